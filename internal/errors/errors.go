package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the kind of load failure
type ErrorType string

const (
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeParse      ErrorType = "PARSE"
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeCoercion   ErrorType = "COERCION"
	ErrTypeValidation ErrorType = "VALIDATION"
)

// LoadError represents a failure in one of the load pipeline steps
type LoadError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with LoadError
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *LoadError) WithContext(key string, value interface{}) *LoadError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewLoadError creates a new load error
func NewLoadError(errType ErrorType, message string, cause error) *LoadError {
	return &LoadError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for the load failure kinds

// NewNotFoundError reports a workbook path that does not exist
func NewNotFoundError(path string) *LoadError {
	return NewLoadError(ErrTypeNotFound, fmt.Sprintf("file %s not found", path), nil).
		WithContext("path", path)
}

// NewParseError reports a workbook or sheet that could not be read
func NewParseError(message string, cause error) *LoadError {
	return NewLoadError(ErrTypeParse, message, cause)
}

// NewSchemaError reports a declared column missing from the source sheet
func NewSchemaError(column string) *LoadError {
	return NewLoadError(ErrTypeSchema, fmt.Sprintf("column %q not found in sheet", column), nil).
		WithContext("column", column)
}

// NewCoercionError reports a cell value that cannot be converted to its
// declared column type. Row is the post-filter row index.
func NewCoercionError(column string, row int, value string, cause error) *LoadError {
	return NewLoadError(ErrTypeCoercion,
		fmt.Sprintf("cannot coerce value %q in column %q at row %d", value, column, row), cause).
		WithContext("column", column).
		WithContext("row", row).
		WithContext("value", value)
}

// NewValidationError reports rows left with missing cells after coercion
func NewValidationError(message string, rows []int) *LoadError {
	return NewLoadError(ErrTypeValidation, message, nil).
		WithContext("rows", rows)
}

// TypeOf returns the load error type, or the empty string for other errors
func TypeOf(err error) ErrorType {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Type
	}
	return ""
}

// IsType checks whether err is a load error of the given type
func IsType(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}
