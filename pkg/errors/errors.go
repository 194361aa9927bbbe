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

	// File errors
	ErrFileRead   ErrorCode = "FILE_READ"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrPermission ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Fatal parse errors. These abort the whole parse and carry the
	// offending 1-based line number and raw text in Details.
	ErrParseMultilineComment ErrorCode = "PARSE_MULTILINE_COMMENT"
	ErrParseMultilineString  ErrorCode = "PARSE_MULTILINE_STRING"
	ErrParseMultiplePackages ErrorCode = "PARSE_MULTIPLE_PACKAGES"

	// Collaborator errors
	ErrSearch  ErrorCode = "SEARCH"
	ErrRebuild ErrorCode = "REBUILD"
)

// AnnixError represents a structured error with code and details
type AnnixError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AnnixError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AnnixError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AnnixError) Is(target error) bool {
	var targetErr *AnnixError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AnnixError with the given code and message
func New(code ErrorCode, message string) *AnnixError {
	return &AnnixError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AnnixError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AnnixError {
	return &AnnixError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AnnixError
func Wrap(err error, code ErrorCode, message string) *AnnixError {
	if err == nil {
		return nil
	}
	return &AnnixError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AnnixError {
	if err == nil {
		return nil
	}
	return &AnnixError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AnnixError) WithDetail(key string, value interface{}) *AnnixError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithLine records the offending 1-based line number and raw line text.
// Used by fatal parse errors so callers can show the exact spot.
func (e *AnnixError) WithLine(number int, raw string) *AnnixError {
	return e.WithDetail("line", number).WithDetail("raw", raw)
}

// Line returns the 1-based line number and raw text attached to the error,
// or ok=false if the error carries no line context.
func Line(err error) (number int, raw string, ok bool) {
	var annixErr *AnnixError
	if !errors.As(err, &annixErr) {
		return 0, "", false
	}
	n, haveNum := annixErr.Details["line"].(int)
	r, haveRaw := annixErr.Details["raw"].(string)
	if !haveNum || !haveRaw {
		return 0, "", false
	}
	return n, r, true
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var annixErr *AnnixError
	if errors.As(err, &annixErr) {
		return annixErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AnnixError
func GetErrorCode(err error) ErrorCode {
	var annixErr *AnnixError
	if errors.As(err, &annixErr) {
		return annixErr.Code
	}
	return ErrUnknown
}

// IsParseError reports whether the error is one of the fatal parse errors.
func IsParseError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrParseMultilineComment ||
		code == ErrParseMultilineString ||
		code == ErrParseMultiplePackages
}
