package errors

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/dirmod/pkg/types"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Syntax errors
	ErrSyntax            ErrorCode = "SYNTAX"
	ErrRepeatedStatement ErrorCode = "REPEATED_STATEMENT"

	// Semantic conflicts
	ErrDuplicateVisibility ErrorCode = "DUPLICATE_VISIBILITY"
	ErrExcludedSpecial     ErrorCode = "EXCLUDED_SPECIAL"

	// Collaborator failures
	ErrDirRead         ErrorCode = "DIR_READ"
	ErrEntryRead       ErrorCode = "ENTRY_READ"
	ErrNonUTF8         ErrorCode = "NON_UTF8"
	ErrInvalidLocation ErrorCode = "INVALID_LOCATION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// DirmodError represents a structured error with code, position and details
type DirmodError struct {
	Code    ErrorCode
	Message string
	Pos     types.Position
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DirmodError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if loc := e.Pos.String(); loc != "" {
		msg = loc + ": " + msg
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return msg
}

// Unwrap implements the errors.Unwrap interface
func (e *DirmodError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DirmodError) Is(target error) bool {
	var targetErr *DirmodError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DirmodError with the given code and message
func New(code ErrorCode, message string) *DirmodError {
	return &DirmodError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DirmodError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DirmodError {
	return &DirmodError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// At creates a new DirmodError located at pos
func At(pos types.Position, code ErrorCode, format string, args ...interface{}) *DirmodError {
	return Newf(code, format, args...).WithPos(pos)
}

// Wrap wraps an existing error with a DirmodError
func Wrap(err error, code ErrorCode, message string) *DirmodError {
	if err == nil {
		return nil
	}
	return &DirmodError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DirmodError {
	if err == nil {
		return nil
	}
	return &DirmodError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Context prefixes the message of a DirmodError with the stage it failed in,
// keeping its code and position. Other errors are wrapped as internal.
func Context(err error, stage string) error {
	if err == nil {
		return nil
	}
	var dirmodErr *DirmodError
	if errors.As(err, &dirmodErr) {
		ctxErr := &DirmodError{
			Code:    dirmodErr.Code,
			Message: fmt.Sprintf("error during %s: %s", stage, dirmodErr.Message),
			Pos:     dirmodErr.Pos,
			Details: make(map[string]interface{}, len(dirmodErr.Details)),
			Wrapped: dirmodErr.Wrapped,
		}
		return ctxErr.WithDetails(dirmodErr.Details)
	}
	return Wrapf(err, ErrInternal, "error during %s", stage)
}

// WithPos sets the position of the error
func (e *DirmodError) WithPos(pos types.Position) *DirmodError {
	e.Pos = pos
	return e
}

// WithDetail adds a detail to the error
func (e *DirmodError) WithDetail(key string, value interface{}) *DirmodError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DirmodError) WithDetails(details map[string]interface{}) *DirmodError {
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
	var dirmodErr *DirmodError
	if errors.As(err, &dirmodErr) {
		return dirmodErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DirmodError
func GetErrorCode(err error) ErrorCode {
	var dirmodErr *DirmodError
	if errors.As(err, &dirmodErr) {
		return dirmodErr.Code
	}
	return ErrUnknown
}

// GetPosition returns the position of an error, or the zero position if not a DirmodError
func GetPosition(err error) types.Position {
	var dirmodErr *DirmodError
	if errors.As(err, &dirmodErr) {
		return dirmodErr.Pos
	}
	return types.Position{}
}

// GetErrorDetails returns the details from an error, or nil if not a DirmodError
func GetErrorDetails(err error) map[string]interface{} {
	var dirmodErr *DirmodError
	if errors.As(err, &dirmodErr) {
		return dirmodErr.Details
	}
	return nil
}
