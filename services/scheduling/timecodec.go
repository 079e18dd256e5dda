package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Meridiem is the AM/PM half of a 12-hour clock reading.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// ParseMeridiem accepts "am"/"pm" in any case.
func ParseMeridiem(s string) (Meridiem, error) {
	switch Meridiem(strings.ToUpper(strings.TrimSpace(s))) {
	case AM:
		return AM, nil
	case PM:
		return PM, nil
	case "":
		return "", newValidationError(CodeMissingField, "meridiem", "AM/PM is required")
	}
	return "", newValidationError(CodeInvalidTime, "meridiem", fmt.Sprintf("%q is not AM or PM", s))
}

// TimeInput is the 12-hour form a user edits. Hour and Minute are kept as the
// raw field text so a blank field can be told apart from zero.
type TimeInput struct {
	Hour     string   `json:"hour"`
	Minute   string   `json:"minute"`
	Meridiem Meridiem `json:"meridiem"`
}

// Canonical converts the input to "HH:MM".
func (t TimeInput) Canonical() (string, error) {
	return To24Hour(t.Hour, t.Minute, t.Meridiem)
}

func (t TimeInput) String() string {
	h := strings.TrimSpace(t.Hour)
	if n, err := strconv.Atoi(h); err == nil {
		h = fmt.Sprintf("%02d", n)
	}
	m := strings.TrimSpace(t.Minute)
	if m == "" {
		m = "00"
	} else if n, err := strconv.Atoi(m); err == nil {
		m = fmt.Sprintf("%02d", n)
	}
	return fmt.Sprintf("%s:%s %s", h, m, t.Meridiem)
}

// To24Hour converts a 12-hour reading into the canonical "HH:MM" form.
// A blank minute defaults to "00"; a blank hour is a missing field.
func To24Hour(hour12, minute string, meridiem Meridiem) (string, error) {
	hour12 = strings.TrimSpace(hour12)
	minute = strings.TrimSpace(minute)

	if hour12 == "" {
		return "", newValidationError(CodeMissingField, "hour", "hour is required")
	}
	h, err := strconv.Atoi(hour12)
	if err != nil || h < 1 || h > 12 {
		return "", newValidationError(CodeInvalidTime, "hour", fmt.Sprintf("hour %q must be between 1 and 12", hour12))
	}

	m := 0
	if minute != "" {
		m, err = strconv.Atoi(minute)
		if err != nil || m < 0 || m > 59 {
			return "", newValidationError(CodeInvalidTime, "minute", fmt.Sprintf("minute %q must be between 0 and 59", minute))
		}
	}

	switch meridiem {
	case PM:
		if h != 12 {
			h += 12
		}
	case AM:
		if h == 12 {
			h = 0
		}
	case "":
		return "", newValidationError(CodeMissingField, "meridiem", "AM/PM is required")
	default:
		return "", newValidationError(CodeInvalidTime, "meridiem", fmt.Sprintf("%q is not AM or PM", meridiem))
	}

	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// To12Hour maps a 24-hour hour onto the 1..12 display hour.
func To12Hour(hour24 int) int {
	switch {
	case hour24 == 0:
		return 12
	case hour24 > 12:
		return hour24 - 12
	}
	return hour24
}

// MeridiemFor derives AM/PM from a 24-hour hour.
func MeridiemFor(hour24 int) Meridiem {
	if hour24 >= 12 {
		return PM
	}
	return AM
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (hour, minute, second int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("time %q is not HH:MM or HH:MM:SS", s)
	}
	limits := []int{23, 59, 59}
	vals := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || len(p) == 0 || len(p) > 2 || n < 0 || n > limits[i] {
			return 0, 0, 0, fmt.Errorf("time %q is out of range", s)
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], nil
}

// NormalizeCanonical rewrites "H:MM" or "HH:MM:SS" into "HH:MM".
func NormalizeCanonical(s string) (string, error) {
	h, m, _, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// FromCanonical turns a stored "HH:MM" back into the 12-hour edit form.
func FromCanonical(s string) (TimeInput, error) {
	h, m, _, err := ParseTimeOfDay(s)
	if err != nil {
		return TimeInput{}, err
	}
	return TimeInput{
		Hour:     fmt.Sprintf("%02d", To12Hour(h)),
		Minute:   fmt.Sprintf("%02d", m),
		Meridiem: MeridiemFor(h),
	}, nil
}

// FromClock reads the wall-clock time of t as a 12-hour input.
func FromClock(t time.Time) TimeInput {
	return TimeInput{
		Hour:     fmt.Sprintf("%02d", To12Hour(t.Hour())),
		Minute:   fmt.Sprintf("%02d", t.Minute()),
		Meridiem: MeridiemFor(t.Hour()),
	}
}

// ParseClock12 reads user text such as "9:05 PM", "09:05pm" or "9 am".
func ParseClock12(s string) (TimeInput, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	var mer Meridiem
	switch {
	case strings.HasSuffix(s, string(AM)):
		mer = AM
	case strings.HasSuffix(s, string(PM)):
		mer = PM
	default:
		return TimeInput{}, newValidationError(CodeMissingField, "meridiem", fmt.Sprintf("%q has no AM/PM suffix", s))
	}
	clock := strings.TrimSpace(strings.TrimSuffix(s, string(mer)))

	hour, minute, _ := strings.Cut(clock, ":")
	in := TimeInput{Hour: hour, Minute: minute, Meridiem: mer}
	if _, err := in.Canonical(); err != nil {
		return TimeInput{}, err
	}
	return in, nil
}
