package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tutorly/models"
	"tutorly/utils"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "session:reminder"

// NewReminderTask builds the reminder for one session. The task ID is derived
// from the session ID, and asynq only rejects a duplicate ID while the task is
// still stored, so retention must outlast the window in which scans can pick the
// session up again.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time, retention time.Duration) (*asynq.Task, []asynq.Option, error) {
	if payload.SessionID == "" {
		return nil, nil, errors.New("reminder task: empty session id")
	}
	if retention <= 0 {
		return nil, nil, fmt.Errorf("reminder task: retention must be positive, got %s", retention)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(TaskID(payload.SessionID)),
		asynq.Retention(retention),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// TaskID is the queue ID of a session's reminder.
func TaskID(sessionID string) string {
	return utils.ReminderTaskPrefix + sessionID
}

// ParseReminderTask decodes a reminder task payload.
func ParseReminderTask(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
