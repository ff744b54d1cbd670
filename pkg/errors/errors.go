// Package errors provides structured error types for the lineage application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the pipeline packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure in the render pipeline maps to one of a small set of codes.
// None of them are retryable: a render either completes with full frame
// coverage or is discarded in full.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeStructuralGraph, "person %d: unresolved parent %d", id, pid)
//	if errors.Is(err, errors.ErrCodeStructuralGraph) {
//	    // Handle planning failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLayoutEngine, origErr, "render plain output")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// ErrCodeInvalidInput covers CSV ingestion failures: missing columns,
	// malformed rows, duplicate IDs, dangling parent or spouse references.
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// ErrCodeInvalidConfig covers configuration file problems.
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// ErrCodeStructuralGraph covers scene-planning failures: relationship
	// cycles or references that make progress impossible.
	ErrCodeStructuralGraph Code = "STRUCTURAL_GRAPH"

	// ErrCodeLayoutEngine covers graphviz invocation failures and
	// unparseable plain-format output.
	ErrCodeLayoutEngine Code = "LAYOUT_ENGINE"

	// ErrCodeLayoutConsistency covers layout data that references
	// identifiers absent from the family or the node table.
	ErrCodeLayoutConsistency Code = "LAYOUT_CONSISTENCY"

	// ErrCodeEncode covers video encoder invocation failures.
	ErrCodeEncode Code = "ENCODE_ERROR"

	// ErrCodeInternal covers unexpected internal errors.
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
		return e.Message
	}
	return err.Error()
}
