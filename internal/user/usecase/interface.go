// Package usecase implements user and role management on top of the credential store.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/lsoftware/inventory/internal/user/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
// Deleted users are invisible to every read.
type UserRepository interface {
	// Create stores a new user and its role grants. Returns ErrUserAlreadyExists on a unique violation.
	Create(ctx context.Context, user *domain.User) error

	// Update stores name, last name, status and replaces the role grants.
	Update(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by its stored (upper-cased) username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	ExistsByDocumentOrUsername(ctx context.Context, document, username string) (bool, error)

	List(ctx context.Context, offset, limit int) ([]*domain.User, error)

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// SoftDelete sets the user status to deleted. Returns ErrUserNotFound if not found.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	// Create stores a new role. Returns ErrRoleAlreadyExists on a duplicate name.
	Create(ctx context.Context, role *domain.Role) error

	List(ctx context.Context) ([]*domain.Role, error)

	// GetByIDs returns the existing roles among ids.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Role, error)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hashed string) bool
}

// UserUseCase defines business logic operations for managing users.
type UserUseCase interface {
	// Create registers an active user with the given roles.
	// Returns ErrUserAlreadyExists when a live user has the same document or username,
	// and ErrRoleNotFound when none of the role IDs exist.
	Create(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error)

	// Update modifies name, last name, status and roles of a live user.
	Update(ctx context.Context, id uuid.UUID, input *domain.UpdateUserInput) (*domain.User, error)

	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// List returns live users ordered by username.
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)

	// Delete soft deletes a user. Tokens already issued stay valid until they expire.
	Delete(ctx context.Context, id uuid.UUID) error

	// ChangePassword replaces the password of the calling user.
	// principalName is the authenticated subject; the input username must match it.
	ChangePassword(ctx context.Context, principalName string, input *domain.ChangePasswordInput) error
}

// RoleUseCase defines business logic operations for managing roles.
type RoleUseCase interface {
	Create(ctx context.Context, input *domain.CreateRoleInput) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
}
