package domain

import "fmt"

// NotFoundError is returned when an aggregate cannot be located by its identifier.
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFoundError creates a NotFoundError for the given entity and id.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// ValidationError is returned when input fails a domain rule before anything is persisted.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError signals a concurrent modification or a uniqueness violation.
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError.
func NewConflictError(msg string) *ConflictError {
	return &ConflictError{Message: msg}
}

func (e *ConflictError) Error() string { return e.Message }

// ForbiddenError signals that the caller may not act on the resource.
type ForbiddenError struct {
	Message string
}

// NewForbiddenError creates a ForbiddenError.
func NewForbiddenError(msg string) *ForbiddenError {
	return &ForbiddenError{Message: msg}
}

func (e *ForbiddenError) Error() string { return e.Message }
