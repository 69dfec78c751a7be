// Package apperr defines the error kinds surfaced by the bill containers:
// transport failures from the store, validation failures on user input and
// per-record formatting failures.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindValidation
	KindFormat
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// TransportError is returned when the bill store reports a failure.
// Status is the HTTP-like status code, zero when no response was received.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

// Error returns the user-facing message, e.g. "Erreur 404"
func (e *TransportError) Error() string {
	if e.Status == 0 {
		return "Erreur réseau"
	}
	return fmt.Sprintf("Erreur %d", e.Status)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError for a store operation
func NewTransportError(op string, status int, err error) *TransportError {
	return &TransportError{Op: op, Status: status, Err: err}
}

// ValidationError is returned when user input is rejected
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// FormatError is returned when a single record cannot be formatted for display
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot format %q: %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, looking through wrapped errors
func KindOf(err error) Kind {
	var transportErr *TransportError
	var validationErr *ValidationError
	var formatErr *FormatError

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &formatErr):
		return KindFormat
	default:
		return KindUnknown
	}
}

// StatusOf returns the transport status carried by err, if any
func StatusOf(err error) (int, bool) {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Status, true
	}
	return 0, false
}
