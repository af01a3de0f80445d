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

	// Manifest errors
	ErrManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifestRead     ErrorCode = "MANIFEST_READ"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrRemove        ErrorCode = "REMOVE"

	// Collaborator errors
	ErrCompare ErrorCode = "COMPARE"
	ErrEditor  ErrorCode = "EDITOR"
)

// NeostowError represents a structured error with code and details
type NeostowError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *NeostowError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *NeostowError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a NeostowError carrying the same code.
func (e *NeostowError) Is(target error) bool {
	var targetErr *NeostowError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new NeostowError with the given code and message
func New(code ErrorCode, message string) *NeostowError {
	return &NeostowError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new NeostowError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *NeostowError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a NeostowError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *NeostowError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *NeostowError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *NeostowError) WithDetail(key string, value interface{}) *NeostowError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var neoErr *NeostowError
	if errors.As(err, &neoErr) {
		return neoErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a NeostowError
func GetErrorCode(err error) ErrorCode {
	var neoErr *NeostowError
	if errors.As(err, &neoErr) {
		return neoErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a NeostowError
func GetErrorDetails(err error) map[string]interface{} {
	var neoErr *NeostowError
	if errors.As(err, &neoErr) {
		return neoErr.Details
	}
	return nil
}

// Message renders err for end users: the chain of messages without codes
func Message(err error) string {
	e, ok := err.(*NeostowError)
	if !ok {
		return err.Error()
	}
	if e.Wrapped == nil {
		return e.Message
	}
	return e.Message + ": " + Message(e.Wrapped)
}
