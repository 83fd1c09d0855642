package session

import "errors"

// ErrValidation is the sentinel every *ValidationError unwraps to.
var ErrValidation = errors.New("validation error")

// ValidationError is a user-facing refusal that leaves the session usable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

var (
	ErrEmptySelection   = NewValidationError("select at least one word")
	ErrNoEntries        = NewValidationError("no entries to triage")
	ErrTriageIncomplete = NewValidationError("finish triage before submitting")
	ErrNothingToSubmit  = NewValidationError("every word was marked known; nothing to submit")
	ErrNoWords          = NewValidationError("no words to submit")
)
