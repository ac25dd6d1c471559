package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed.
	// Every *ValidationError matches it with errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUpstream indicates that an external collaborator (news provider,
	// article page, cache) failed.
	ErrUpstream = errors.New("upstream service failed")
)

// ValidationError represents a validation error with detailed field information.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidationFailed) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
