// Package http provides HTTP handlers for user and role management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
	authHTTP "github.com/lsoftware/inventory/internal/auth/http"
	"github.com/lsoftware/inventory/internal/httputil"
	"github.com/lsoftware/inventory/internal/user/http/dto"
	"github.com/lsoftware/inventory/internal/user/usecase"
)

// Response messages of the user endpoints.
const (
	MessageUserCreated     = "User created"
	MessageUserUpdated     = "User updated"
	MessageUserDeleted     = "User deleted"
	MessageUserFound       = "User found"
	MessageUsersPaginated  = "Users Paginated"
	MessagePasswordChanged = "Password changed"
)

// UserHandler handles user management requests.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUseCase usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// parseUserID reads the :id path parameter.
func parseUserID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id: must be a valid UUID")
	}
	return id, nil
}

// CreateHandler registers a user.
// POST /api/v1/users - Requires ROLE_ADMIN.
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Create(c.Request.Context(), dto.ToCreateUserInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusCreated, MessageUserCreated, dto.ToUserResponse(user))
}

// UpdateHandler modifies name, last name, status and roles of a user.
// PUT /api/v1/users/:id - Requires ROLE_ADMIN.
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Update(c.Request.Context(), id, dto.ToUpdateUserInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, MessageUserUpdated, dto.ToUserResponse(user))
}

// GetHandler returns a single user.
// GET /api/v1/users/:id - Requires ROLE_ADMIN.
func (h *UserHandler) GetHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, MessageUserFound, dto.ToUserResponse(user))
}

// ListHandler returns one page of live users ordered by username.
// GET /api/v1/users?offset=0&limit=50 - Requires ROLE_ADMIN.
func (h *UserHandler) ListHandler(c *gin.Context) {
	page, err := httputil.ParsePage(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.List(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, MessageUsersPaginated, dto.ToListUsersResponse(users, page.Offset, page.Limit))
}

// DeleteHandler soft deletes a user.
// DELETE /api/v1/users/:id - Requires ROLE_ADMIN.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, MessageUserDeleted, nil)
}

// ChangePasswordHandler replaces the password of the calling user.
// PUT /api/v1/users/changePassword - Requires an authenticated principal.
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.AbortWithErrorGin(
			c,
			http.StatusForbidden,
			httputil.MessageAccessDenied,
			authDomain.ErrAccessDenied,
			h.logger,
		)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	err := h.userUseCase.ChangePassword(c.Request.Context(), principal.Name, dto.ToChangePasswordInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, MessagePasswordChanged, nil)
}
