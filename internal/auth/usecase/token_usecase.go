package usecase

import (
	"context"
	"time"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
	authService "github.com/lsoftware/inventory/internal/auth/service"
	"github.com/lsoftware/inventory/internal/config"
)

// tokenUseCase implements TokenUseCase on top of the claims codec.
// It keeps no per-token state.
type tokenUseCase struct {
	config        *config.Config
	authenticator Authenticator
	codec         authService.ClaimsCodec
	mapper        authService.AuthorityMapper
	now           func() time.Time
}

// NewTokenUseCase creates a new TokenUseCase. clock supplies the issue instant; nil means time.Now.
func NewTokenUseCase(
	cfg *config.Config,
	authenticator Authenticator,
	codec authService.ClaimsCodec,
	mapper authService.AuthorityMapper,
	clock func() time.Time,
) TokenUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &tokenUseCase{
		config:        cfg,
		authenticator: authenticator,
		codec:         codec,
		mapper:        mapper,
		now:           clock,
	}
}

// Issue authenticates the credentials and signs a token for the identity.
//
// The subject is the stored username and the authorities are the raw role names,
// without RolePrefix. Returns ErrBadCredentials without distinguishing why
// authentication failed.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	credentials *authDomain.Credentials,
) (*authDomain.IssueTokenOutput, error) {
	identity, err := t.authenticator.Authenticate(ctx, credentials)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := t.codec.Encode(
		identity.Name,
		identity.Authorities,
		t.now(),
		t.config.JWTTokenExpirationDays,
	)
	if err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate decodes token and maps its authorities into permissions.
func (t *tokenUseCase) Authenticate(_ context.Context, token string) (*authDomain.Principal, error) {
	claims, err := t.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	return &authDomain.Principal{
		Name:        claims.Subject,
		Authorities: t.mapper.Map(claims.Authorities),
	}, nil
}
