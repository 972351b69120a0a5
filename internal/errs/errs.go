package errs

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.Key)
}

// NotFound creates a not-found error for the named resource.
func NotFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

// ConflictError reports a uniqueness or state conflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Conflict creates a conflict error with a formatted message.
func Conflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError carries per-field validation failures.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for field, msg := range e.Fields {
		return fmt.Sprintf("%s: %s", field, msg)
	}
	return "validation failed"
}

// Validation creates a single-field validation error.
func Validation(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// ValidationFields creates a validation error from a field->message map.
func ValidationFields(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
