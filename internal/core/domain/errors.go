package domain

import "errors"

var (
	// ErrNotFound reports that a lookup by id matched no record. Adapters
	// decide the wire-level status.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput reports a malformed creation or update request.
	ErrInvalidInput = errors.New("invalid input")
)

// MissingFieldError names the absent required field so adapters can report
// it on the wire.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "Missing required field: " + e.Field
}

func (e *MissingFieldError) Unwrap() error {
	return ErrInvalidInput
}
