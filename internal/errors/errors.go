// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInvalidLayerIndex indicates an operation referenced a layer
	// index outside [0, len). A programming error on the caller's side.
	TypeInvalidLayerIndex Type = "INVALID_LAYER_INDEX"

	// TypeDegenerateRateEdit indicates an RPM or ILF edit could not be
	// applied (zero/missing limit or undefined base RPM). Recovered
	// locally by the aggregate; never surfaces past the engine.
	TypeDegenerateRateEdit Type = "DEGENERATE_RATE_EDIT"

	// TypeWritingLayerRemoval indicates an attempt to delete the
	// writing-carrier layer. Rejected before any mutation.
	TypeWritingLayerRemoval Type = "WRITING_LAYER_REMOVAL"

	// TypeValidation indicates a tower failed invariant validation
	TypeValidation Type = "VALIDATION_ERROR"

	// TypeInput indicates an input decoding or shape error
	TypeInput Type = "INPUT_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// InvalidLayerIndex creates an invalid layer index error
func InvalidLayerIndex(index, length int) *Error {
	return Newf(TypeInvalidLayerIndex, "layer index %d out of range [0, %d)", index, length)
}

// DegenerateRateEdit creates a degenerate rate edit error
func DegenerateRateEdit(reason string) *Error {
	return Newf(TypeDegenerateRateEdit, "rate edit dropped: %s", reason)
}

// WritingLayerRemoval creates a writing layer removal error
func WritingLayerRemoval(index int) *Error {
	return Newf(TypeWritingLayerRemoval, "layer %d is the writing layer and cannot be removed", index)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(TypeValidation, message)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...interface{}) *Error {
	return Newf(TypeValidation, format, args...)
}

// Input creates an input error
func Input(message string, cause error) *Error {
	return Wrap(TypeInput, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
