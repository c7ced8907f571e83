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
	ErrPermission   ErrorCode = "PERMISSION"
	ErrUnsupported  ErrorCode = "UNSUPPORTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Host and profile errors
	ErrHostUnreachable ErrorCode = "HOST_UNREACHABLE"
	ErrProfileRoot     ErrorCode = "PROFILE_ROOT"
	ErrUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCommand         ErrorCode = "COMMAND"

	// Shortcut errors
	ErrShortcutRead   ErrorCode = "SHORTCUT_READ"
	ErrShortcutWrite  ErrorCode = "SHORTCUT_WRITE"
	ErrShortcutFormat ErrorCode = "SHORTCUT_FORMAT"
	ErrNoReference    ErrorCode = "NO_REFERENCE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrBackup     ErrorCode = "BACKUP"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// RetargetError represents a structured error with code and details
type RetargetError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RetargetError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RetargetError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RetargetError) Is(target error) bool {
	var targetErr *RetargetError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RetargetError with the given code and message
func New(code ErrorCode, message string) *RetargetError {
	return &RetargetError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RetargetError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RetargetError {
	return &RetargetError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RetargetError.
// A nil err yields a nil error value, not a typed nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &RetargetError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &RetargetError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RetargetError) WithDetail(key string, value interface{}) *RetargetError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rerr *RetargetError
	if errors.As(err, &rerr) {
		return rerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RetargetError
func GetErrorCode(err error) ErrorCode {
	var rerr *RetargetError
	if errors.As(err, &rerr) {
		return rerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RetargetError
func GetErrorDetails(err error) map[string]interface{} {
	var rerr *RetargetError
	if errors.As(err, &rerr) {
		return rerr.Details
	}
	return nil
}

// Message returns the message of a RetargetError without the code prefix,
// or err.Error() for any other error.
func Message(err error) string {
	var rerr *RetargetError
	if errors.As(err, &rerr) {
		if rerr.Wrapped != nil {
			return fmt.Sprintf("%s: %v", rerr.Message, rerr.Wrapped)
		}
		return rerr.Message
	}
	return err.Error()
}
