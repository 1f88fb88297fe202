// Package usecase orchestrates login and token verification.
package usecase

import (
	"context"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
	userDomain "github.com/lsoftware/inventory/internal/user/domain"
)

// CredentialStore looks up users for authentication.
type CredentialStore interface {
	// GetByUsername retrieves a live user by its stored (upper-cased) username.
	// Returns userDomain.ErrUserNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// Authenticator verifies submitted credentials.
type Authenticator interface {
	// Authenticate returns the identity of an active user whose password matches.
	// Unknown users, inactive users and wrong passwords all yield ErrBadCredentials.
	Authenticate(ctx context.Context, credentials *authDomain.Credentials) (*authDomain.Identity, error)
}

// TokenUseCase issues identity tokens on login and turns presented tokens into principals.
type TokenUseCase interface {
	// Issue authenticates credentials and signs a token for the resulting identity.
	// The token carries raw authority names; expiry follows the configured day count.
	Issue(ctx context.Context, credentials *authDomain.Credentials) (*authDomain.IssueTokenOutput, error)

	// Authenticate verifies token and builds the request principal.
	// Every failure is an *authDomain.InvalidTokenError.
	Authenticate(ctx context.Context, token string) (*authDomain.Principal, error)
}
