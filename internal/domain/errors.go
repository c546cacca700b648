package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Usecases wrap these with %w and
// the HTTP layer maps them to status codes via errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrDuplicate        = errors.New("duplicate resource")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidSignature = errors.New("invalid signature")
)

// ValidationError carries per-field messages alongside the Validation sentinel.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(fields ...string) error {
	return &ValidationError{Fields: fields}
}
