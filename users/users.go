package users

import (
	"fmt"
	"time"
	"unicode"

	"github.com/jrsteele09/go-admin-portal/tenants"
)

// User is the identity record the backend resolves for the current session.
// It is always the backend's authoritative copy; the client never derives or
// merges user fields locally.
type User struct {
	ID        string          `json:"id,omitempty"`         // Unique identifier for the user
	Name      string          `json:"name,omitempty"`       // Display name
	Email     string          `json:"email,omitempty"`      // User's email address
	Role      Role            `json:"role,omitempty"`       // Authorization label (user, admin, super-admin)
	TenantID  string          `json:"tenant_id,omitempty"`  // Tenant the user belongs to, empty for system-level users
	Tenant    *tenants.Tenant `json:"tenant,omitempty"`     // Expanded tenant record when the backend includes it
	CreatedAt time.Time       `json:"created_at,omitempty"` // When the identity was created
}

// IsAdmin reports whether the user holds admin-class privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// RegisterRequest is the payload for creating and authenticating a new
// identity in a single call.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// ProfileUpdate carries the mutable profile fields. Zero-valued fields are
// omitted from the request body.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}
