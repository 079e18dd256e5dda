package scheduling

import (
	"errors"
	"fmt"
)

// ValidationCode identifies why an availability edit was rejected.
type ValidationCode string

const (
	CodeSameStartEnd ValidationCode = "SAME_START_END"
	CodeMissingField ValidationCode = "MISSING_FIELD"
	CodeInvalidTime  ValidationCode = "INVALID_TIME"
	CodeInvalidDay   ValidationCode = "INVALID_DAY"
)

// ValidationError is recovered locally: the edit stays open so the user can retry.
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (%s): %s", e.Code, e.Field, e.Message)
}

func newValidationError(code ValidationCode, field, msg string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: msg}
}

// PersistenceError wraps a failed call to the persistence collaborator.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s availability: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// AuthError signals a missing or rejected credential on a write. It is never retried.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication required"
	}
	return "authentication required: " + e.Message
}

var (
	ErrEditInProgress = errors.New("an availability edit is already open")
	ErrCommitInFlight = errors.New("an availability save is already in flight")
	ErrNoEditSession  = errors.New("no availability edit is open")
)

// IsValidationError reports whether err carries a *ValidationError with the given code.
// An empty code matches any validation error.
func IsValidationError(err error, code ValidationCode) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return code == "" || ve.Code == code
}
