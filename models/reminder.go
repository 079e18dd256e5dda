package models

// ReminderPayload is the asynq task body for an upcoming-session reminder.
type ReminderPayload struct {
	SessionID       string `json:"sessionId"`
	TutorID         string `json:"tutorId"`
	CounterpartName string `json:"counterpartName,omitempty"`
	SessionDate     string `json:"sessionDate"`
	StartTime       string `json:"startTime"`
	FireDate        string `json:"fireDate"`
}
