package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrBackendUnavailable indicates no backend client is configured.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidRating indicates a feedback rating outside +1/-1.
	ErrInvalidRating = errors.New("rating must be +1 or -1")
)

// ValidationError is a local, pre-network failure. It never reaches the
// transport: the offending operation is rejected before any call is made.
type ValidationError struct {
	// Message is the user-visible validation message.
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RequestError means the backend returned a non-success status.
// Message is derived from the error body: a bare string body verbatim,
// else the body's "detail" field, else its "error" field, else a generic
// "Request failed with status <code>".
type RequestError struct {
	// Status is the HTTP status code the backend returned.
	Status int

	// Message is the human-readable failure message.
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// GenericRequestMessage is the fallback message when the error body
// yields nothing usable.
func GenericRequestMessage(status int) string {
	return fmt.Sprintf("Request failed with status %d", status)
}

// TransportError means the network call itself could not complete:
// the backend was unreachable, the connection dropped, or the request
// timed out. No response body exists to inspect.
type TransportError struct {
	// Err is the underlying transport failure.
	Err error
}

func (e *TransportError) Error() string {
	return "backend unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
