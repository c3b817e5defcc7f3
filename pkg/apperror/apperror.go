package apperror

import (
	"errors"
	"net/http"
)

// Error is an error with an associated HTTP status code.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest reports a missing or malformed required field (400)
func BadRequest(message string) *Error {
	return newError(http.StatusBadRequest, message)
}

// Unauthorized reports a missing, invalid or expired credential (401)
func Unauthorized(message string) *Error {
	return newError(http.StatusUnauthorized, message)
}

// Forbidden reports an authenticated caller not entitled to the resource (403)
func Forbidden(message string) *Error {
	return newError(http.StatusForbidden, message)
}

// NotFound reports an absent referenced entity (404)
func NotFound(message string) *Error {
	return newError(http.StatusNotFound, message)
}

// Conflict reports a uniqueness violation (409)
func Conflict(message string) *Error {
	return newError(http.StatusConflict, message)
}

// Internal reports an unexpected failure completing an operation (500)
func Internal(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// StatusOf returns the HTTP status carried by err, or 500 for plain errors.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
