package domain

import "time"

// Scope selects where a token survives: persistent outlives the terminal
// session, ephemeral does not.
type Scope string

const (
	ScopeNone       Scope = ""
	ScopePersistent Scope = "persistent"
	ScopeEphemeral  Scope = "ephemeral"
)

type Role string

const (
	RoleNone        Role = ""
	RoleEmployee    Role = "employee"
	RoleCoordinator Role = "coordinator"
	RoleAdmin       Role = "admin"
)

// ParseRole maps backend role names; "user" is the backend's employee.
func ParseRole(raw string) Role {
	switch raw {
	case "user", "employee":
		return RoleEmployee
	case "coordinator":
		return RoleCoordinator
	case "admin":
		return RoleAdmin
	default:
		return RoleNone
	}
}

// Privileged reports whether the role may use coordinator tooling.
func (r Role) Privileged() bool {
	return r == RoleCoordinator || r == RoleAdmin
}

type Claims struct {
	SubjectID string
	FullName  string
	Role      Role
}

func (c Claims) Empty() bool {
	return c.SubjectID == "" && c.FullName == "" && c.Role == RoleNone
}

type StoredToken struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

type User struct {
	ID       int64
	Email    string
	FullName string
	Role     Role
}
