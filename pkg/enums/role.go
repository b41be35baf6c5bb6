package enums

import "fmt"

// Role is the permission tier carried inside a session token.
type Role string

const (
	// RoleUser is the unprivileged tier; only the test token issuer mints it.
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

var validRoles = []Role{
	RoleUser,
	RoleAdmin,
	RoleManager,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// Privileged reports whether the role may see soft-deleted and hidden data.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleManager
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
