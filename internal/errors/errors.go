// Package errors provides the error types shared by the reconciliation backend.
// Sentinels support errors.Is checks; typed errors carry the detail that ends up
// in an audit's error_message or an HTTP response.
package errors

import (
	"errors"
	"fmt"
)

// Aliases for the standard library helpers so callers need a single import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

var (
	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates the resource is in a state that forbids the operation.
	ErrConflict = errors.New("conflict")
)

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// InputError is raised when an input file is missing or structurally unreadable.
// It aborts the run it belongs to.
type InputError struct {
	Path    string
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *InputError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInputError creates a new InputError.
func NewInputError(path, message string, err error) *InputError {
	return &InputError{Path: path, Message: message, Err: err}
}

// ConflictError reports an operation attempted against a resource in the wrong state.
type ConflictError struct {
	Resource string
	State    string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is %s: %s", e.Resource, e.State, e.Message)
}

// Is implements errors.Is support.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a new ConflictError.
func NewConflictError(resource, state, message string) *ConflictError {
	return &ConflictError{Resource: resource, State: state, Message: message}
}
