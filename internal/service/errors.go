package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoggedIn is returned before any network call when no token is stored.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrUnauthorized is returned when the backend rejects the stored token.
	ErrUnauthorized = errors.New("token expired or revoked")

	// ErrNotFound is returned when the backend or a local lookup finds nothing.
	ErrNotFound = errors.New("not found")
)

// ValidationError is a client-side form error caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BackendError is a failed backend call. Message is the server-provided
// message when there was one, otherwise a fallback for the operation.
type BackendError struct {
	Status  int
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Message returns the text to show the user for err: the server message of
// a BackendError, the message of a ValidationError, or err.Error().
func Message(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
