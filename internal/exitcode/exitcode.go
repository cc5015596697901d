// Package exitcode defines exit codes for the CLI and maps errors onto them.
package exitcode

import (
	"errors"

	"mytasks/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid form input, unknown task).
	UserError = 1

	// AuthError indicates a missing, expired or rejected session.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// FromError classifies err. A nil error is Success.
func FromError(err error) int {
	var ve *service.ValidationError
	switch {
	case err == nil:
		return Success
	case errors.As(err, &ve):
		return UserError
	case errors.Is(err, service.ErrNotLoggedIn), errors.Is(err, service.ErrUnauthorized):
		return AuthError
	case errors.Is(err, service.ErrNotFound):
		return UserError
	default:
		return BackendError
	}
}
