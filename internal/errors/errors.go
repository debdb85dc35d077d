package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors.
//
// The first group covers the dashboard core; every one of them is recoverable
// and leaves the screen and the field registry as they were.
const (
	ErrInvalidPosition  = "INVALID_POSITION"
	ErrNameCollision    = "NAME_COLLISION"
	ErrUnknownField     = "UNKNOWN_FIELD"
	ErrSurfaceNotReady  = "SURFACE_NOT_READY"
	ErrInvalidThreshold = "INVALID_THRESHOLD"
	ErrUnknownWindow    = "UNKNOWN_WINDOW"

	// ErrTerminal marks a failure to bring up the terminal itself. Hosts treat
	// it as fatal: the dashboard must not be run afterwards.
	ErrTerminal = "TERMINAL"
	ErrConfig   = "CONFIG"
	ErrProbe    = "PROBE"
	ErrSSH      = "SSH"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Newf creates a structured error without a suggestion, formatting the message.
// Most core errors are of this form: the message already says what to fix.
func Newf(code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrTerminal code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrTerminal,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
// Wrapped chains are searched, so a dashboard error surfaced through the CLI
// still matches its original code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var sbErr *Error
	if errors.As(err, &sbErr) {
		return sbErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first structured Error in err's chain, or ""
// when there is none.
func CodeOf(err error) string {
	var sbErr *Error
	if errors.As(err, &sbErr) {
		return sbErr.Code
	}
	return ""
}
