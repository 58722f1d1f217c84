package domain

import "errors"

// ErrValidation is the sentinel wrapped by every cross-field validation
// failure (missing airport, conflicting codes, incomplete dates).
// Callers surface the wrapped message inline and never treat it as fatal.
var ErrValidation = errors.New("validation error")

// ValidationError carries a user-facing message and the field it points at.
// It wraps ErrValidation so errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	// Field names the offending input: "origin", "destination", "dates".
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a field-scoped validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
