// internal/app/system/apperr/apperr.go
package apperr

import (
	"errors"
	"net/http"
)

// Error is the single structured application error. Services raise it with
// an HTTP status and a user-facing message; the response layer maps it to
// the JSON envelope. Anything that is not an *Error surfaces as a 500.
type Error struct {
	Status  int
	Message string
	Err     error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an application error with an explicit HTTP status.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Wrap attaches a cause to an application error.
func Wrap(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

// NotFound is a 404 application error.
func NotFound(message string) *Error { return New(http.StatusNotFound, message) }

// Conflict is a 409 application error (duplicate unique field,
// already-applied state transition).
func Conflict(message string) *Error { return New(http.StatusConflict, message) }

// Forbidden is a 403 application error.
func Forbidden(message string) *Error { return New(http.StatusForbidden, message) }

// BadRequest is a 400 application error.
func BadRequest(message string) *Error { return New(http.StatusBadRequest, message) }

// Unauthorized is a 401 application error.
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }

// StatusOf extracts the HTTP status for err: the carried status for an
// application error, 500 for everything else.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the user-facing message for err. Non-application
// errors get a generic message so internals never leak to clients.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Internal server error"
}

// Is reports whether err is an application error with the given status.
func Is(err error, status int) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == status
}
