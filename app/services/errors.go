package services

import "fmt"

// ValidationError rejects bad input before any mutation. Fields carries
// per-field messages for the HTTP layer.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message, Fields: map[string]string{}}
}

func (e *ValidationError) WithField(field, message string) *ValidationError {
	e.Fields[field] = message
	return e
}

// NotFoundError signals an unknown entity reference.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// ConflictError rejects an operation that contradicts current state, e.g.
// deleting a plan with recorded payments.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ConcurrencyError marks a transient failure from two writers racing on
// the same row; callers may retry.
type ConcurrencyError struct {
	Message string
}

func (e *ConcurrencyError) Error() string { return e.Message }
