package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "config", "route"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Helper constructors for common cases

func ConfigNotFound(path string) error {
	return &NotFoundError{Resource: "config", ID: path}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NotANumber(raw string) error {
	if raw == "" {
		return &ValidationError{Field: "number", Message: "value is empty"}
	}
	return &ValidationError{Field: "number", Message: fmt.Sprintf("%q is not a whole number", raw)}
}

func NumberOutOfRange(raw string) error {
	return &ValidationError{Field: "number", Message: fmt.Sprintf("%q is out of range", raw)}
}

func NumberTooSmall(n, min int) error {
	return &ValidationError{Field: "number", Message: fmt.Sprintf("%d is below the minimum of %d", n, min)}
}

func NumberTooLarge(n, max int) error {
	return &ValidationError{Field: "number", Message: fmt.Sprintf("%d is above the maximum of %d", n, max)}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
