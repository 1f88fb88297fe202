package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
	authUseCase "github.com/lsoftware/inventory/internal/auth/usecase"
	"github.com/lsoftware/inventory/internal/httputil"
)

// VerificationMiddleware authenticates requests carrying a bearer token.
//
// The middleware:
//  1. Reads the configured authorization header
//  2. Leaves the request anonymous when the header is absent or does not start with prefix
//  3. Verifies the token with tokenUseCase.Authenticate
//  4. Stores the principal in the request context for RequireAuthority and handlers
//
// Any verification failure answers 403 with the message "Invalid Token". When
// echoInvalidToken is set the rejected token is appended to the message.
//
// Usage:
//
//	router.Use(VerificationMiddleware(tokenUseCase, "Authorization", "Bearer ", false, logger))
func VerificationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	header string,
	prefix string,
	echoInvalidToken bool,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		value := c.GetHeader(header)
		if value == "" || !strings.HasPrefix(value, prefix) {
			c.Next()
			return
		}

		rawToken := strings.TrimPrefix(value, prefix)

		principal, err := tokenUseCase.Authenticate(c.Request.Context(), rawToken)
		if err != nil {
			message := authDomain.MessageInvalidToken
			if echoInvalidToken {
				message += " " + rawToken
			}
			httputil.AbortWithErrorGin(c, http.StatusForbidden, message, err, logger)
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))

		logger.Debug("token verified",
			slog.String("principal", principal.Name),
			slog.Int("authorities", len(principal.Authorities)))

		c.Next()
	}
}

// RequireAuthority rejects requests whose principal holds none of perms.
// With no perms any authenticated principal is accepted.
// Anonymous requests are rejected with 403 as well.
//
// MUST be used after VerificationMiddleware.
func RequireAuthority(logger *slog.Logger, perms ...authDomain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || !principal.HasAnyAuthority(perms...) {
			httputil.AbortWithErrorGin(
				c,
				http.StatusForbidden,
				httputil.MessageAccessDenied,
				authDomain.ErrAccessDenied,
				logger,
			)
			return
		}

		c.Next()
	}
}

// RequireAuthenticated rejects anonymous requests.
func RequireAuthenticated(logger *slog.Logger) gin.HandlerFunc {
	return RequireAuthority(logger)
}
