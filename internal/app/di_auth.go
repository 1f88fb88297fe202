package app

import (
	"fmt"

	authHTTP "github.com/lsoftware/inventory/internal/auth/http"
	authService "github.com/lsoftware/inventory/internal/auth/service"
	authUseCase "github.com/lsoftware/inventory/internal/auth/usecase"
)

// SigningKey returns the token signing key, decrypting the configured secret through
// the KMS keeper when JWTSecretKMSKeyURI is set.
func (c *Container) SigningKey() (*authService.SigningKey, error) {
	var err error
	c.signingKeyInit.Do(func() {
		c.signingKey, err = c.initSigningKey()
		if err != nil {
			c.setInitError("signingKey", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("signingKey"); storedErr != nil {
		return nil, storedErr
	}
	return c.signingKey, nil
}

// PasswordService returns the password hasher shared by login and user management.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	var err error
	c.passwordServiceInit.Do(func() {
		c.passwordService, err = authService.NewPasswordService()
		if err != nil {
			c.setInitError("passwordService", fmt.Errorf("failed to create password service: %w", err))
		}
	})
	if storedErr := c.initError("passwordService"); storedErr != nil {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// ClaimsCodec returns the JWT codec bound to the signing key.
func (c *Container) ClaimsCodec() (authService.ClaimsCodec, error) {
	var err error
	c.claimsCodecInit.Do(func() {
		c.claimsCodec, err = c.initClaimsCodec()
		if err != nil {
			c.setInitError("claimsCodec", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("claimsCodec"); storedErr != nil {
		return nil, storedErr
	}
	return c.claimsCodec, nil
}

// AuthorityMapper returns the mapper from raw authorities to permissions.
func (c *Container) AuthorityMapper() authService.AuthorityMapper {
	c.authorityMapperInit.Do(func() {
		c.authorityMapper = authService.NewAuthorityMapper()
	})
	return c.authorityMapper
}

// Authenticator returns the credential authenticator backed by the user repository.
func (c *Container) Authenticator() (authUseCase.Authenticator, error) {
	var err error
	c.authenticatorInit.Do(func() {
		c.authenticator, err = c.initAuthenticator()
		if err != nil {
			c.setInitError("authenticator", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("authenticator"); storedErr != nil {
		return nil, storedErr
	}
	return c.authenticator, nil
}

// TokenUseCase returns the token use case, wrapped with metrics when enabled.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.setInitError("tokenUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("tokenUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// LoginHandler returns the HTTP handler of POST /login.
func (c *Container) LoginHandler() (*authHTTP.LoginHandler, error) {
	var err error
	c.loginHandlerInit.Do(func() {
		c.loginHandler, err = c.initLoginHandler()
		if err != nil {
			c.setInitError("loginHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("loginHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.loginHandler, nil
}

func (c *Container) initSigningKey() (*authService.SigningKey, error) {
	resolver := authService.NewSecretResolver(c.Logger())

	secret, err := resolver.Resolve(c.ctx, c.config.JWTSecretKey, c.config.JWTSecretKMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve jwt secret: %w", err)
	}

	key, err := authService.NewSigningKey(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create signing key: %w", err)
	}
	return key, nil
}

func (c *Container) initClaimsCodec() (authService.ClaimsCodec, error) {
	key, err := c.SigningKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get signing key for claims codec: %w", err)
	}
	return authService.NewClaimsCodec(key, nil), nil
}

func (c *Container) initAuthenticator() (authUseCase.Authenticator, error) {
	userRepository, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for authenticator: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for authenticator: %w", err)
	}

	return authUseCase.NewAuthenticator(userRepository, passwordService), nil
}

func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	authenticator, err := c.Authenticator()
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticator for token use case: %w", err)
	}

	codec, err := c.ClaimsCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get claims codec for token use case: %w", err)
	}

	baseUseCase := authUseCase.NewTokenUseCase(c.config, authenticator, codec, c.AuthorityMapper(), nil)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return authUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initLoginHandler() (*authHTTP.LoginHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for login handler: %w", err)
	}

	return authHTTP.NewLoginHandler(
		tokenUseCase,
		c.config.JWTAuthorizationHeader,
		c.config.JWTTokenPrefix,
		c.config.AuthLoginTimeout,
		c.Logger(),
	), nil
}
