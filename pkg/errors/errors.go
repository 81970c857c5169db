package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Usage errors (bad names on the command line)
	ErrUsage ErrorCode = "USAGE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Descriptor resolution errors
	ErrFormulaUnavailable ErrorCode = "FORMULA_UNAVAILABLE"
	ErrFormulaAmbiguous   ErrorCode = "FORMULA_AMBIGUOUS"
	ErrFormulaParse       ErrorCode = "FORMULA_PARSE"

	// Installed keg errors
	ErrKegNotFound  ErrorCode = "KEG_NOT_FOUND"
	ErrKegAmbiguous ErrorCode = "KEG_AMBIGUOUS"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
)

// MaltError represents a structured error with code and details
type MaltError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MaltError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MaltError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MaltError) Is(target error) bool {
	var targetErr *MaltError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MaltError with the given code and message
func New(code ErrorCode, message string) *MaltError {
	return &MaltError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MaltError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MaltError {
	return &MaltError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MaltError
func Wrap(err error, code ErrorCode, message string) *MaltError {
	if err == nil {
		return nil
	}
	return &MaltError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MaltError {
	if err == nil {
		return nil
	}
	return &MaltError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MaltError) WithDetail(key string, value interface{}) *MaltError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *MaltError) WithDetails(details map[string]interface{}) *MaltError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var maltErr *MaltError
	if errors.As(err, &maltErr) {
		return maltErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MaltError
func GetErrorCode(err error) ErrorCode {
	var maltErr *MaltError
	if errors.As(err, &maltErr) {
		return maltErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MaltError
func GetErrorDetails(err error) map[string]interface{} {
	var maltErr *MaltError
	if errors.As(err, &maltErr) {
		return maltErr.Details
	}
	return nil
}
