package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
	"github.com/lsoftware/inventory/internal/auth/http/dto"
	authUseCase "github.com/lsoftware/inventory/internal/auth/usecase"
	apperrors "github.com/lsoftware/inventory/internal/errors"
	"github.com/lsoftware/inventory/internal/httputil"
)

// LoginHandler exchanges username and password for a signed identity token.
type LoginHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	header       string
	prefix       string
	timeout      time.Duration
	logger       *slog.Logger
}

// NewLoginHandler creates a login handler.
// The token is returned in header as prefix followed by the token.
func NewLoginHandler(
	tokenUseCase authUseCase.TokenUseCase,
	header string,
	prefix string,
	timeout time.Duration,
	logger *slog.Logger,
) *LoginHandler {
	return &LoginHandler{
		tokenUseCase: tokenUseCase,
		header:       header,
		prefix:       prefix,
		timeout:      timeout,
		logger:       logger,
	}
}

// LoginHandler authenticates the posted credentials.
// POST /login - No authentication required.
// Returns 200 with an empty body and the token in the authorization header,
// or 403 "Bad credentials".
func (h *LoginHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.AbortWithErrorGin(
			c,
			http.StatusForbidden,
			authDomain.MessageBadCredentials,
			apperrors.Join(authDomain.ErrMalformedRequestBody, err),
			h.logger,
		)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.AbortWithErrorGin(
			c,
			http.StatusForbidden,
			authDomain.MessageBadCredentials,
			apperrors.Join(authDomain.ErrBadCredentials, err),
			h.logger,
		)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	output, err := h.tokenUseCase.Issue(ctx, req.ToCredentials())
	if err != nil {
		if apperrors.Is(err, authDomain.ErrBadCredentials) {
			httputil.AbortWithErrorGin(c, http.StatusForbidden, authDomain.MessageBadCredentials, err, h.logger)
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("login succeeded",
		slog.String("username", req.Username),
		slog.Time("expires_at", output.ExpiresAt))

	c.Header(h.header, h.prefix+output.Token)
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
}
