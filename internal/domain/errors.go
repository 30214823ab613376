package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a request body cannot be turned into a
	// domain entity. It is usually wrapped in a ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is not in the expected shape.
	// It is distinct from a not-found result.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError describes which field of an incoming document was rejected.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError. A nil err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Err, e.Message)
	}
	return fmt.Sprintf("%s: %s %s", e.Err, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is lets every ValidationError match ErrValidation, whatever it wraps.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
