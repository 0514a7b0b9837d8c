package users

// Role represents a coarse authorization label attached to an identity.
type Role string

const (
	// RoleUser is a regular member of a tenant.
	RoleUser Role = "user"
	// RoleAdmin can manage users, subscriptions, and billing within the admin panel.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin can manage all tenants and system configuration.
	RoleSuperAdmin Role = "super-admin"
)

func (r Role) String() string {
	return string(r)
}

// Valid reports whether the role is one of the known labels. Unknown labels
// coming back from the backend are kept as-is but never satisfy any
// requirement except an exact match.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Satisfies reports whether a user holding this role meets the given
// requirement. An admin requirement is met by admin or super-admin; every
// other requirement needs an exact match. Super-admin does NOT implicitly
// satisfy non-admin requirements.
func (r Role) Satisfies(required Role) bool {
	if required == RoleAdmin {
		return r == RoleAdmin || r == RoleSuperAdmin
	}
	return r == required
}
