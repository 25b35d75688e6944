// Package domainerrors provides coded errors shared across services and
// transports. Services attach a Code describing the failure category; the
// HTTP layer translates codes into status codes without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_failed"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeStorage            Code = "storage_failed"
	CodeSubmission         Code = "submission_failed"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal"
)

// Error is a domain error with a machine-readable code and a user-facing
// message. The wrapped cause, if any, is for logs only and never serialized.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability.
func Is(err error, code Code) bool { return HasCode(err, code) }

// MessageOf extracts the user-facing message from err, or returns fallback
// when err is not a domain error.
func MessageOf(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return fallback
}

// ToHTTPStatus maps a code to an HTTP status. Unknown codes map to 500 so a
// missing case never leaks a success status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvariantViolation:
		return http.StatusConflict
	case CodeStorage, CodeSubmission:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
