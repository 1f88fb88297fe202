package usecase

import (
	"context"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
	authService "github.com/lsoftware/inventory/internal/auth/service"
	apperrors "github.com/lsoftware/inventory/internal/errors"
	userDomain "github.com/lsoftware/inventory/internal/user/domain"
)

// credentialAuthenticator implements Authenticator against the credential store.
type credentialAuthenticator struct {
	store     CredentialStore
	passwords authService.PasswordService
}

// NewAuthenticator creates an Authenticator backed by store and passwords.
func NewAuthenticator(store CredentialStore, passwords authService.PasswordService) Authenticator {
	return &credentialAuthenticator{
		store:     store,
		passwords: passwords,
	}
}

// Authenticate looks the user up by its upper-cased username and verifies the password.
func (a *credentialAuthenticator) Authenticate(
	ctx context.Context,
	credentials *authDomain.Credentials,
) (*authDomain.Identity, error) {
	username := userDomain.NormalizeUsername(credentials.Username)
	if username == "" || credentials.Password == "" {
		return nil, authDomain.ErrBadCredentials
	}

	user, err := a.store.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrBadCredentials
		}
		return nil, err
	}

	if !user.IsActive() {
		return nil, authDomain.ErrBadCredentials
	}

	if !a.passwords.Compare(credentials.Password, user.Password) {
		return nil, authDomain.ErrBadCredentials
	}

	return &authDomain.Identity{
		Name:        user.Username,
		Authorities: user.RoleNames(),
	}, nil
}
