package scheduling

import (
	"fmt"
	"strings"
	"time"

	"tutorly/models"
)

const dateLayout = "2006-01-02"

// Classify places a session relative to now. The bucket compares calendar
// dates only; the live status compares now against the session window composed
// on the session's date, with both ends inclusive. Dates are read in now's
// location. The result depends on now and must be recomputed, never stored.
func Classify(now time.Time, rec models.SessionRecord) (models.Classification, error) {
	day, err := sessionDay(rec.SessionDate, now.Location())
	if err != nil {
		return models.Classification{}, err
	}
	start, err := onDay(day, rec.StartTime)
	if err != nil {
		return models.Classification{}, fmt.Errorf("session %s start: %w", rec.ID, err)
	}
	end, err := onDay(day, rec.EndTime)
	if err != nil {
		return models.Classification{}, fmt.Errorf("session %s end: %w", rec.ID, err)
	}

	var c models.Classification

	today := midnight(now)
	switch {
	case day.Equal(today):
		c.BookingBucket = models.BucketToday
	case day.After(today):
		c.BookingBucket = models.BucketUpcoming
	default:
		c.BookingBucket = models.BucketPast
	}

	switch {
	case now.After(end):
		c.LiveStatus = models.LiveEnded
	case !now.Before(start):
		c.LiveStatus = models.LiveOngoing
	default:
		c.LiveStatus = models.LiveNext
	}
	return c, nil
}

// Annotate classifies every record at the same instant. Records whose date or
// times cannot be read are returned separately, in input order.
func Annotate(now time.Time, records []models.SessionRecord) ([]models.ClassifiedSession, []models.SessionRecord) {
	out := make([]models.ClassifiedSession, 0, len(records))
	var invalid []models.SessionRecord
	for _, rec := range records {
		c, err := Classify(now, rec)
		if err != nil {
			invalid = append(invalid, rec)
			continue
		}
		out = append(out, models.ClassifiedSession{SessionRecord: rec, Classification: c})
	}
	return out, invalid
}

// GroupByBucket builds the Today/Upcoming/Past board for now.
func GroupByBucket(now time.Time, records []models.SessionRecord) models.SessionBoard {
	annotated, invalid := Annotate(now, records)
	board := models.SessionBoard{
		EvaluatedAt: now.Format(time.RFC3339),
		Today:       []models.ClassifiedSession{},
		Upcoming:    []models.ClassifiedSession{},
		Past:        []models.ClassifiedSession{},
		Invalid:     invalid,
	}
	for _, cs := range annotated {
		switch cs.BookingBucket {
		case models.BucketToday:
			board.Today = append(board.Today, cs)
		case models.BucketUpcoming:
			board.Upcoming = append(board.Upcoming, cs)
		case models.BucketPast:
			board.Past = append(board.Past, cs)
		}
	}
	return board
}

// SessionStart returns the instant the session begins, in loc.
func SessionStart(rec models.SessionRecord, loc *time.Location) (time.Time, error) {
	day, err := sessionDay(rec.SessionDate, loc)
	if err != nil {
		return time.Time{}, err
	}
	return onDay(day, rec.StartTime)
}

// sessionDay reads "2006-01-02" or a full RFC 3339 timestamp and keeps only its
// calendar date, placed at midnight in loc.
func sessionDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(dateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
		}
	}
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session date %q: %w", s, err)
	}
	return d, nil
}

func onDay(day time.Time, clock string) (time.Time, error) {
	h, m, s, err := ParseTimeOfDay(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, day.Location()), nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
