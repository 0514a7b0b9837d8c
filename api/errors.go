package api

import (
	"errors"
	"fmt"
)

// ErrNetwork is the root cause attached to any request that never produced a
// response from the backend (connection refused, DNS failure, timeout).
var ErrNetwork = errors.New("no response / network error")

// Error is a structured application error decoded from a non-2xx backend
// response body.
type Error struct {
	Status  int    // HTTP status code
	Message string // Human-readable message from the backend payload, may be empty
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// IsNetworkError reports whether the request failed before reaching the
// backend.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// Message normalizes any error from this package into a human-readable
// string: the backend's message when one was supplied, the network-failure
// message for transport errors, and the given fallback otherwise.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if IsNetworkError(err) {
		return ErrNetwork.Error()
	}
	return fallback
}
