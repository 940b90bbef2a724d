package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTitle is returned when a task title is blank after trimming.
var ErrEmptyTitle = errors.New("task title must not be empty")

// ErrorType classifies a field failure.
type ErrorType string

const (
	ErrorTypeRequired      ErrorType = "required"
	ErrorTypeInvalidFormat ErrorType = "invalid_format"
	ErrorTypeInvalidLength ErrorType = "invalid_length"
	ErrorTypeMismatch      ErrorType = "mismatch"
	ErrorTypeInvalidValue  ErrorType = "invalid_value"
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string
	Type    ErrorType
	Message string
}

// Error implements the error interface for FieldError.
func (fe *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError represents a collection of validation errors.
type ValidationError struct {
	Errors []FieldError
}

// Error implements the error interface for ValidationError.
func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation error"
	case 1:
		return ve.Errors[0].Error()
	}

	messages := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if the ValidationError has any errors.
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Add appends a field error.
func (ve *ValidationError) Add(field string, typ ErrorType, message string) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: typ, Message: message})
}

// FieldErrors returns all errors for a specific field.
func (ve *ValidationError) FieldErrors(field string) []FieldError {
	var out []FieldError
	for _, err := range ve.Errors {
		if err.Field == field {
			out = append(out, err)
		}
	}
	return out
}

// UserMessage returns the first failure's message, which is what the forms
// show under the submit button.
func (ve *ValidationError) UserMessage() string {
	if len(ve.Errors) == 0 {
		return "Input validation failed"
	}
	return ve.Errors[0].Message
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
