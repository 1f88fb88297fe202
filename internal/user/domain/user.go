// Package domain defines the user and role entities backing authentication.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a user.
type Status int

const (
	// StatusInactive users exist but cannot log in.
	StatusInactive Status = 0
	// StatusActive users can log in.
	StatusActive Status = 1
	// StatusDeleted users are soft deleted and invisible to every lookup.
	StatusDeleted Status = 2
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s == StatusInactive || s == StatusActive || s == StatusDeleted
}

// User represents an inventory operator.
// Username is stored upper-cased; Password holds a hash, never the plain value.
type User struct {
	ID        uuid.UUID
	Document  string
	Name      string
	LastName  string
	Username  string
	Password  string
	Status    Status
	Roles     []Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the user may authenticate.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// RoleNames returns the raw authority names granted through the user's roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// NormalizeUsername returns the canonical stored form of a username.
func NormalizeUsername(username string) string {
	return strings.ToUpper(strings.TrimSpace(username))
}

// CreateUserInput contains the data needed to register a user.
type CreateUserInput struct {
	Document string
	Name     string
	LastName string
	Username string
	Password string
	RoleIDs  []uuid.UUID
}

// UpdateUserInput contains the mutable fields of a user.
type UpdateUserInput struct {
	Name     string
	LastName string
	Status   Status
	RoleIDs  []uuid.UUID
}

// ChangePasswordInput contains a password change request for the calling user.
type ChangePasswordInput struct {
	Username    string
	OldPassword string
	NewPassword string
}
