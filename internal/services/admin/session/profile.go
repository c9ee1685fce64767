package session

import "strings"

// Role is the operator role asserted at login.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// Known reports whether the role is one the console recognizes.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Profile is the plain, unsigned user record cached next to the token.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// DisplayName returns the name to show in the header.
func (p Profile) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return p.Email
}

// IsSuperAdmin reports whether the cached role is super-admin. Display only.
func (p Profile) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

func (p Profile) valid() bool {
	return strings.TrimSpace(p.ID) != ""
}
