package errors

import (
	"fmt"
	"net/http"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports missing or malformed input (400)
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Unauthenticated reports a missing or invalid credential (401)
func Unauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

// Forbidden reports an ownership violation (403)
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

// NotFound reports an absent entity (404)
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// StoreUnavailable reports an unreachable or timed-out store (500)
func StoreUnavailable(err error) *Error {
	return New(http.StatusInternalServerError, "Service temporarily unavailable", err)
}

// Unexpected wraps anything uncaught (500)
func Unexpected(err error) *Error {
	return New(http.StatusInternalServerError, "Something went wrong!", err)
}

// From normalizes any error into an *Error
func From(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return Unexpected(err)
}
