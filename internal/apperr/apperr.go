// Package apperr defines the error kinds surfaced by the service layer.
// Handlers match them with errors.Is and map them to HTTP statuses.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidRequest covers request-level validation failures:
	// self-friending, non-positive geofence dimensions, empty tags.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound marks a missing document. The API reports it as a 400,
	// matching the behavior clients already depend on.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized covers bad or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStoreWrite wraps a failed write against the document store.
	// No retries are attempted; the failure propagates to the caller.
	ErrStoreWrite = errors.New("store write failed")
)

// Status maps an error to the HTTP status code it should be reported with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrNotFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
