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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Discovery errors
	ErrExecutableNotFound ErrorCode = "EXECUTABLE_NOT_FOUND"
	ErrNoMatch            ErrorCode = "NO_MATCH"

	// Launcher file errors
	ErrMalformedEntry ErrorCode = "MALFORMED_ENTRY"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrBackup     ErrorCode = "BACKUP"
)

// WaylandifyError represents a structured error with code and details
type WaylandifyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WaylandifyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WaylandifyError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *WaylandifyError) Is(target error) bool {
	var targetErr *WaylandifyError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WaylandifyError with the given code and message
func New(code ErrorCode, message string) *WaylandifyError {
	return &WaylandifyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WaylandifyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WaylandifyError {
	return &WaylandifyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a WaylandifyError
func Wrap(err error, code ErrorCode, message string) *WaylandifyError {
	if err == nil {
		return nil
	}
	return &WaylandifyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WaylandifyError {
	if err == nil {
		return nil
	}
	return &WaylandifyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *WaylandifyError) WithDetail(key string, value interface{}) *WaylandifyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var wErr *WaylandifyError
	if errors.As(err, &wErr) {
		return wErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a WaylandifyError
func GetErrorCode(err error) ErrorCode {
	var wErr *WaylandifyError
	if errors.As(err, &wErr) {
		return wErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a WaylandifyError
func GetErrorDetails(err error) map[string]interface{} {
	var wErr *WaylandifyError
	if errors.As(err, &wErr) {
		return wErr.Details
	}
	return nil
}
