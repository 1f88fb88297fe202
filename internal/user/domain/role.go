package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is a named authority that can be granted to users.
// Name is the raw authority written into identity tokens (e.g. "ADMIN").
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// CreateRoleInput contains the data needed to register a role.
type CreateRoleInput struct {
	Name        string
	Description string
}

// NormalizeRoleName returns the canonical stored form of a role name.
func NormalizeRoleName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
