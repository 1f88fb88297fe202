package dto

import (
	"time"

	"github.com/google/uuid"
)

// RoleResponse represents a role in API responses.
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// UserResponse represents a user in API responses.
// The password hash is never exposed.
type UserResponse struct {
	ID        uuid.UUID      `json:"id"`
	Document  string         `json:"document"`
	Name      string         `json:"name"`
	LastName  string         `json:"lastName"`
	Username  string         `json:"username"`
	Status    int            `json:"status"`
	Roles     []RoleResponse `json:"roles"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ListUsersResponse is one page of users.
type ListUsersResponse struct {
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
	Users  []UserResponse `json:"users"`
}
