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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Substitution errors
	ErrUnresolvedVariable   ErrorCode = "UNRESOLVED_VARIABLE"
	ErrMalformedPlaceholder ErrorCode = "MALFORMED_PLACEHOLDER"
	ErrSequenceValue        ErrorCode = "SEQUENCE_VALUE"

	// Materialization errors
	ErrPathConflict         ErrorCode = "PATH_CONFLICT"
	ErrSiblingNameCollision ErrorCode = "SIBLING_NAME_COLLISION"
	ErrFileAlreadyExists    ErrorCode = "FILE_ALREADY_EXISTS"
	ErrCancelled            ErrorCode = "CANCELLED"
	ErrInvalidName          ErrorCode = "INVALID_NAME"
	ErrRunNotRestartable    ErrorCode = "RUN_NOT_RESTARTABLE"

	// Template errors
	ErrInvalidTemplate  ErrorCode = "INVALID_TEMPLATE"
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"

	// Variable errors
	ErrMissingVariable ErrorCode = "MISSING_VARIABLE"
	ErrInvalidVariable ErrorCode = "INVALID_VARIABLE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// SvcgenError represents a structured error with code and details
type SvcgenError struct {
	Code    ErrorCode
	Message string
	// Path is the resolved filesystem path the error is about, if any.
	Path    string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SvcgenError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap implements the errors.Unwrap interface
func (e *SvcgenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SvcgenError) Is(target error) bool {
	var targetErr *SvcgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SvcgenError with the given code and message
func New(code ErrorCode, message string) *SvcgenError {
	return &SvcgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SvcgenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SvcgenError {
	return &SvcgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SvcgenError
func Wrap(err error, code ErrorCode, message string) *SvcgenError {
	if err == nil {
		return nil
	}
	return &SvcgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SvcgenError {
	if err == nil {
		return nil
	}
	return &SvcgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SvcgenError) WithDetail(key string, value interface{}) *SvcgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SvcgenError) WithDetails(details map[string]interface{}) *SvcgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// AtPath returns err bound to path. A SvcgenError without a path is copied
// with Path set so the code and details survive; a SvcgenError that already
// names a path is returned unchanged. Other errors are wrapped as ErrInternal.
func AtPath(err error, path string) error {
	if err == nil {
		return nil
	}
	var svcErr *SvcgenError
	if !errors.As(err, &svcErr) {
		return Wrap(err, ErrInternal, "unexpected failure").WithPath(path)
	}
	if svcErr.Path != "" {
		return err
	}
	cp := *svcErr
	cp.Details = make(map[string]interface{}, len(svcErr.Details)+1)
	for k, v := range svcErr.Details {
		cp.Details[k] = v
	}
	return cp.WithPath(path)
}

// WithPath binds the error to a resolved filesystem path
func (e *SvcgenError) WithPath(path string) *SvcgenError {
	e.Path = path
	return e.WithDetail("path", path)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var svcErr *SvcgenError
	if errors.As(err, &svcErr) {
		return svcErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SvcgenError
func GetErrorCode(err error) ErrorCode {
	var svcErr *SvcgenError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SvcgenError
func GetErrorDetails(err error) map[string]interface{} {
	var svcErr *SvcgenError
	if errors.As(err, &svcErr) {
		return svcErr.Details
	}
	return nil
}

// GetErrorPath returns the path an error is bound to, or "" if none
func GetErrorPath(err error) string {
	var svcErr *SvcgenError
	if errors.As(err, &svcErr) {
		return svcErr.Path
	}
	return ""
}
