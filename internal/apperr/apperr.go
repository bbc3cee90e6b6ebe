// Package apperr defines the error taxonomy shared by the domain packages.
// Handlers recover these at the request boundary and map them to a status;
// nothing below the boundary writes HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks an operation that collides with existing state,
	// such as a duplicate neighbor request or a second representative image.
	ErrConflict = errors.New("conflict")

	// ErrForbidden marks a visibility or ownership denial.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a missing entity. Entities hidden by visibility are
	// reported the same way so callers cannot probe for existence.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition marks a state change the lifecycle forbids, such
	// as reverting a completed post or changing a handle twice.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrProtectedResource marks an attempt to delete a resource that must
	// always exist, such as a profile.
	ErrProtectedResource = errors.New("protected resource")
)

// Wrap annotates err with a human-readable reason.
func Wrap(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Status maps a taxonomy error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, ErrProtectedResource):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
