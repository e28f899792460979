// Package errors provides structured error types for fjscene.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map onto the failure kinds of a scene run:
//   - MALFORMED_INVOCATION: wrong arity or argument shape at build time
//   - UNSUPPORTED_FORMAT: unknown extension for a resource role (warning)
//   - CONVERTER_FAILURE: a conversion process failed or could not start
//   - RENDERER_*: the renderer could not be launched or failed
//   - INTERRUPTED, TIMEOUT: a blocking wait was cancelled
//   - WORKSPACE*: scratch directory creation and teardown
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedInvocation, "%s takes %d arguments", verb, n)
//	if errors.Is(err, errors.ErrCodeMalformedInvocation) {
//	    // Handle caller error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConverterFailure, origErr, "%s %s", converter, src)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Build-time errors
	ErrCodeMalformedInvocation Code = "MALFORMED_INVOCATION"
	ErrCodeUnsupportedFormat   Code = "UNSUPPORTED_FORMAT"
	ErrCodeInvalidPath         Code = "INVALID_PATH"

	// Process errors
	ErrCodeConverterFailure      Code = "CONVERTER_FAILURE"
	ErrCodeRendererLaunchFailure Code = "RENDERER_LAUNCH_FAILURE"
	ErrCodeRendererFailure       Code = "RENDERER_FAILURE"
	ErrCodeInterrupted           Code = "INTERRUPTED"
	ErrCodeTimeout               Code = "TIMEOUT"

	// Workspace errors
	ErrCodeWorkspace         Code = "WORKSPACE"
	ErrCodeWorkspaceTeardown Code = "WORKSPACE_TEARDOWN"

	// Setup errors
	ErrCodeConfig Code = "CONFIG"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
