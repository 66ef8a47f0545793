package database

import (
	"fmt"
)

// SourceError represents a failure to reach or read the record source.
// The caller reports it once and does not retry; the operator fixes the
// connection or configuration and re-runs.
type SourceError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	return fmt.Sprintf("record source unavailable in %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s not found: %v", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// WrapSourceError wraps a warehouse error with operation context
func WrapSourceError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &SourceError{
		Operation: operation,
		Err:       err,
	}
}

// NewNotFoundErrorWithID creates a new NotFoundError with an ID
func NewNotFoundErrorWithID(resource string, id interface{}) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}
