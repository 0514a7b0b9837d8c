package session

import "github.com/jrsteele09/go-admin-portal/users"

// Status is the resolved authentication state of the running client.
type Status string

const (
	// StatusUnknown is the initial state before the startup probe is issued.
	StatusUnknown Status = "unknown"
	// StatusChecking means the startup probe is in flight.
	StatusChecking Status = "checking"
	// StatusAuthenticated means the backend confirmed a valid session.
	StatusAuthenticated Status = "authenticated"
	// StatusAnonymous means no valid session exists.
	StatusAnonymous Status = "anonymous"
)

func (s Status) String() string {
	return string(s)
}

// Resolved reports whether the startup probe has completed.
func (s Status) Resolved() bool {
	return s == StatusAuthenticated || s == StatusAnonymous
}

// Snapshot is an immutable view of the session at a point in time.
// User is non-nil iff Status is StatusAuthenticated.
type Snapshot struct {
	Status Status
	User   *users.User
}

// Authenticated reports whether the snapshot carries a signed-in identity.
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// Result is the uniform outcome of every mutating store operation. Store
// operations never return raw errors past their boundary; failures are
// normalized into a human-readable message.
type Result struct {
	Success bool
	Message string
}
