package models

// SessionRecord is a booked tutoring session as served by the sessions API.
type SessionRecord struct {
	ID              string  `bson:"id" json:"id"`
	TutorID         string  `bson:"tutorId" json:"-"`
	SessionDate     string  `bson:"sessionDate" json:"sessionDate"` // "2006-01-02"
	StartTime       string  `bson:"startTime" json:"startTime"`     // "HH:MM:SS" or "HH:MM"
	EndTime         string  `bson:"endTime" json:"endTime"`
	CounterpartName string  `bson:"counterpartName,omitempty" json:"counterpartName,omitempty"`
	Notes           string  `bson:"notes,omitempty" json:"notes,omitempty"`
	Amount          float64 `bson:"amount,omitempty" json:"amount,omitempty"`
}

// SessionPage is the paginated list shape: {result, total}.
type SessionPage struct {
	Result []SessionRecord `json:"result"`
	Total  int64           `json:"total"`
}

// SessionQuery holds the list parameters accepted by the sessions endpoint.
type SessionQuery struct {
	Limit  int64  `form:"limit"`
	Offset int64  `form:"offset"`
	Date   string `form:"date"`
}

// BookingBucket groups a session by its calendar date relative to today.
type BookingBucket string

const (
	BucketToday    BookingBucket = "Today"
	BucketUpcoming BookingBucket = "Upcoming"
	BucketPast     BookingBucket = "Past"
)

// LiveStatus is the instant-relative state of a session window.
type LiveStatus string

const (
	LiveEnded   LiveStatus = "Ended"
	LiveOngoing LiveStatus = "Ongoing"
	LiveNext    LiveStatus = "Next"
)

// Classification is derived on every evaluation and never stored.
type Classification struct {
	BookingBucket BookingBucket `json:"bookingBucket"`
	LiveStatus    LiveStatus    `json:"liveStatus"`
}

// ClassifiedSession pairs a record with the classification computed for one instant.
type ClassifiedSession struct {
	SessionRecord
	Classification
}

// SessionBoard is the grouped view rendered by clients.
type SessionBoard struct {
	EvaluatedAt string              `json:"evaluatedAt"`
	Total       int64               `json:"total"`
	Today       []ClassifiedSession `json:"today"`
	Upcoming    []ClassifiedSession `json:"upcoming"`
	Past        []ClassifiedSession `json:"past"`
	Invalid     []SessionRecord     `json:"invalid,omitempty"`
}
