package domain

import (
	"errors"
	"fmt"
)

// Cross-cutting domain errors. Entity-specific validation errors live next
// to the entity they describe.
var (
	// ErrValidation is the root of all input validation failures. Specific
	// failures wrap it so callers can classify with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is malformed.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError is a validation failure tied to a single named field.
// It wraps ErrValidation (or a more specific sentinel) so error chains
// still classify correctly, while carrying enough structure for the API
// layer to report field-level messages.
type ValidationError struct {
	// Field is the JSON name of the offending field.
	Field string

	// Message describes the failure in terms safe to return to clients.
	Message string

	// Err is the underlying sentinel, ErrValidation if nothing more
	// specific applies.
	Err error
}

// NewValidationError builds a ValidationError for the given field. A nil
// err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap exposes the underlying sentinel for errors.Is checks.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
