package domain

import "time"

// Role enumerates the authorization roles a user may hold. Exactly one
// role per user; the same values appear in tokens and database rows.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager
}

// RoleNames renders a role set for user-facing messages.
func RoleNames(roles []Role) []string {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return names
}

// User is the domain model for accounts that authenticate against the
// service. A non-nil DeletedAt hides the row from every read.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
