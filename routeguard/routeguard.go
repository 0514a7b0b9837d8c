// Package routeguard decides, for a session state and a route's declared
// role requirement, whether to render the route, show the startup loading
// indicator, or redirect. It is pure: it only reads the session snapshot and
// never triggers network activity.
package routeguard

import (
	"github.com/jrsteele09/go-admin-portal/session"
	"github.com/jrsteele09/go-admin-portal/users"
)

// Redirect targets.
const (
	LoginPath   = "/login"
	DefaultPath = "/dashboard"
)

// Requirement is a route's static role requirement. A nil RequiredRole marks
// a public route.
type Requirement struct {
	RequiredRole *users.Role
}

// Public returns the requirement for routes anyone may view.
func Public() Requirement {
	return Requirement{}
}

// Require returns a requirement for the given role. Whether other roles
// satisfy it is decided by users.Role.Satisfies.
func Require(role users.Role) Requirement {
	return Requirement{RequiredRole: &role}
}

// Action is the kind of navigation decision.
type Action string

const (
	// ActionAllow renders the requested route.
	ActionAllow Action = "allow"
	// ActionRedirect navigates to Decision.Target instead.
	ActionRedirect Action = "redirect"
	// ActionLoading renders a loading indicator while the startup probe is
	// unresolved. Redirecting here would flash users to /login before the
	// probe confirms their existing session.
	ActionLoading Action = "loading"
)

// Decision is the outcome of an authorization check. Target is set only for
// ActionRedirect.
type Decision struct {
	Action Action
	Target string
}

// Allowed reports whether the route should render.
func (d Decision) Allowed() bool {
	return d.Action == ActionAllow
}

// Authorize computes the navigation decision for a session snapshot against
// a route requirement:
//
//  1. Public route: allow unconditionally, whatever the session status.
//  2. Unresolved session (unknown/checking) on a role-gated route: loading,
//     never a redirect.
//  3. Not authenticated: redirect to the login page.
//  4. Role check via users.Role.Satisfies: admin requirements accept admin
//     and super-admin, everything else is exact match. Insufficient role
//     redirects to the signed-in default area, not to login.
func Authorize(snap session.Snapshot, req Requirement) Decision {
	if req.RequiredRole == nil {
		return Decision{Action: ActionAllow}
	}

	if !snap.Status.Resolved() {
		return Decision{Action: ActionLoading}
	}

	if !snap.Authenticated() {
		return Decision{Action: ActionRedirect, Target: LoginPath}
	}

	if snap.User.Role.Satisfies(*req.RequiredRole) {
		return Decision{Action: ActionAllow}
	}
	return Decision{Action: ActionRedirect, Target: DefaultPath}
}
