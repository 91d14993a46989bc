// Package apperr defines the typed errors the service layer returns.
//
// Every operation failure carries a machine-readable code alongside the
// human-readable message, so the transport layer can expose the code without
// parsing message text.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an operation failure.
type Code string

const (
	// CodeValidation marks malformed input: bad email syntax, password
	// mismatch, too-short fields.
	CodeValidation Code = "BAD_USER_INPUT"

	// CodeUnauthenticated marks a missing or invalid credential.
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	// CodeNotFound marks a missing record. Ownership misses use this
	// code too: a record owned by another user reads as "cannot find",
	// never as "forbidden", so its existence is not leaked.
	CodeNotFound Code = "NOT_FOUND"

	// CodeConflict marks a unique-constraint violation, e.g. a duplicate
	// email on registration.
	CodeConflict Code = "CONFLICT"

	// CodeInternal marks an underlying store failure.
	CodeInternal Code = "INTERNAL"
)

// Error is a typed operation failure.
type Error struct {
	Code    Code
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

// New returns an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap returns an error with the given code and message that wraps err.
// The original error stays reachable through errors.Unwrap.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, err: err}
}

// Validation returns a validation error with the given message.
func Validation(message string) *Error { return New(CodeValidation, message) }

// Unauthenticated returns an authentication error with the given message.
func Unauthenticated(message string) *Error { return New(CodeUnauthenticated, message) }

// NotFound returns a not-found error with the given message.
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// Conflict returns a conflict error with the given message.
func Conflict(message string) *Error { return New(CodeConflict, message) }

// Internal wraps a store failure, keeping the original message reachable.
func Internal(message string, err error) *Error {
	return Wrap(CodeInternal, message, err)
}

// CodeOf extracts the code from err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
