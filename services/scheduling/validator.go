package scheduling

import (
	"tutorly/models"
)

// Validate checks the structural rule for a window: bounds must differ once in
// canonical form. Overlap with other windows is not checked.
func Validate(start24, end24 string) error {
	if start24 == end24 {
		return newValidationError(CodeSameStartEnd, "", "start and end time cannot be the same")
	}
	return nil
}

// ValidateWindow validates a wire payload and returns a copy with both bounds
// normalized to "HH:MM".
func ValidateWindow(p models.AvailabilityPayload) (models.AvailabilityPayload, error) {
	if p.DayOfWeek == "" {
		return p, newValidationError(CodeMissingField, "dayOfWeek", "day of week is required")
	}
	day, err := models.ParseDay(string(p.DayOfWeek))
	if err != nil {
		return p, newValidationError(CodeInvalidDay, "dayOfWeek", err.Error())
	}
	if p.StartTime == "" {
		return p, newValidationError(CodeMissingField, "startTime", "start time is required")
	}
	if p.EndTime == "" {
		return p, newValidationError(CodeMissingField, "endTime", "end time is required")
	}

	start, err := NormalizeCanonical(p.StartTime)
	if err != nil {
		return p, newValidationError(CodeInvalidTime, "startTime", err.Error())
	}
	end, err := NormalizeCanonical(p.EndTime)
	if err != nil {
		return p, newValidationError(CodeInvalidTime, "endTime", err.Error())
	}
	if err := Validate(start, end); err != nil {
		return p, err
	}

	return models.AvailabilityPayload{DayOfWeek: day, StartTime: start, EndTime: end}, nil
}
