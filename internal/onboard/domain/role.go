package domain

import "fmt"

// Role is the workforce permission level of an account. Roles are always
// resolved from the account directory, never taken from client-supplied
// claims.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// ParseRole validates a role string from untrusted input.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Scopes returns the permission scopes granted to the role. Managers can
// issue invites but not administer the system; plain users can only read
// their own profile.
func (r Role) Scopes() []string {
	switch r {
	case RoleAdmin:
		return []string{"profile:read", "invites:write", "admin:read", "admin:write"}
	case RoleManager:
		return []string{"profile:read", "invites:write"}
	default:
		return []string{"profile:read"}
	}
}

func (r Role) String() string { return string(r) }
