package models

import (
	"errors"
	"fmt"
)

// ValidationError reports a record that fails an invariant. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for a named field
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrConfirmationRequired is returned when a hard delete is attempted
// without the explicit confirmation flag
var ErrConfirmationRequired = errors.New("confirmation required")

// FetchError wraps a record-store read failure during a computation the
// caller may retry. Weather provider failures never surface as one; they
// degrade to synthetic fallback data instead.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch from %s failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
