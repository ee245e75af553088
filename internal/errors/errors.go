package errors

import (
	"errors"
	"net/http"
)

// Sentinel domain errors. Repositories produce them, handlers map them to
// status codes with errors.Is.
var (
	// ErrSlotTaken is returned when the partial unique index on
	// (court_id, date, start_time) rejects an insert: another booking won the
	// slot between the availability check and the write. Callers should re-run
	// availability and ask the player to pick again.
	ErrSlotTaken = errors.New("slot already booked")

	ErrBookingNotFound = errors.New("booking not found")
	ErrCourtNotFound   = errors.New("court not found")

	// ErrValidation marks a malformed or out-of-policy request.
	ErrValidation = errors.New("invalid request")
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)
