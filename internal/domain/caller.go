package domain

import "fmt"

type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "", "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUser, fmt.Errorf("role[%s] is not valid", s)
	}
}

// Caller is the already authenticated identity behind a request.
type Caller struct {
	ID   string
	Role Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanAccess reports whether the caller may read or modify a resource owned by ownerID.
func (c Caller) CanAccess(ownerID string) bool {
	return c.IsAdmin() || (c.ID != "" && c.ID == ownerID)
}
