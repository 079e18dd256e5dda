package models

import (
	"fmt"
	"strings"
)

// DayOfWeek is the canonical weekday enumerator used on the wire.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// Weekdays lists the enumerators in display order.
var Weekdays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Abbrev returns the three-letter UI form ("MON").
func (d DayOfWeek) Abbrev() string {
	if len(d) < 3 {
		return string(d)
	}
	return string(d[:3])
}

// Valid reports whether d is one of the seven enumerators.
func (d DayOfWeek) Valid() bool {
	for _, w := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// ParseDay accepts either the canonical name or the three-letter abbreviation,
// case-insensitively.
func ParseDay(s string) (DayOfWeek, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, w := range Weekdays {
		if s == string(w) || s == w.Abbrev() {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown day of week %q", s)
}

// AvailabilityWindow is a recurring weekly range during which a tutor is bookable.
// ID is empty until the window has been persisted.
type AvailabilityWindow struct {
	ID        string    `bson:"id" json:"id,omitempty"`
	TutorID   string    `bson:"tutorId" json:"-"`
	DayOfWeek DayOfWeek `bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime string    `bson:"startTime" json:"startTime"` // "HH:MM", 24h
	EndTime   string    `bson:"endTime" json:"endTime"`     // "HH:MM", 24h
	Status    string    `bson:"status" json:"status,omitempty"`
}

// AvailabilityPayload is the body of both create and update-by-id requests.
type AvailabilityPayload struct {
	DayOfWeek DayOfWeek `json:"dayOfWeek" binding:"required"`
	StartTime string    `json:"startTime" binding:"required"`
	EndTime   string    `json:"endTime" binding:"required"`
}

const (
	AvailabilityStatusActive  = "active"
	AvailabilityStatusPending = "pending"
)
