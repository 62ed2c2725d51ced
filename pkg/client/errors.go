package client

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable means the ledger backend could not be
	// reached at the transport level. The submission may or may not
	// have landed; callers should re-read the history to find out.
	ErrBackendUnavailable = errors.New("ledger backend unavailable")

	// ErrPartialHistory means a history reconstruction aborted before
	// every record was fetched. No truncated list is returned.
	ErrPartialHistory = errors.New("partial history unavailable")

	// ErrEmptyVIN mirrors the backend's validation so it is caught
	// before any round trip.
	ErrEmptyVIN = errors.New("VIN cannot be empty")

	// ErrUnauthorized means the advisory role check already knows the
	// submission is doomed, so it never leaves the client.
	ErrUnauthorized = errors.New("caller is not authorized for this operation")

	// ErrInvalidAddress means an identity argument is malformed.
	ErrInvalidAddress = errors.New("invalid address")
)

// BackendError carries a structured rejection from the ledger backend.
// Reason is the backend's message, surfaced verbatim.
type BackendError struct {
	StatusCode int
	Code       string
	Reason     string
}

func (e *BackendError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("ledger backend rejected request (%s)", e.Code)
}

// Unauthorized reports whether the backend refused the caller for lack
// of role or ownership. On a previously-valid owner this signals a
// concurrent transfer.
func (e *BackendError) Unauthorized() bool {
	return e.Code == "unauthorized"
}
