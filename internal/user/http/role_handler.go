package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lsoftware/inventory/internal/httputil"
	"github.com/lsoftware/inventory/internal/user/http/dto"
	"github.com/lsoftware/inventory/internal/user/usecase"
)

// Response messages of the role endpoints.
const (
	MessageRoleCreated = "Role created"
	MessageRolesList   = "Roles list"
)

// RoleHandler handles role requests.
type RoleHandler struct {
	roleUseCase usecase.RoleUseCase
	logger      *slog.Logger
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roleUseCase usecase.RoleUseCase, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{
		roleUseCase: roleUseCase,
		logger:      logger,
	}
}

// CreateHandler registers a role.
// POST /api/v1/roles - Requires ROLE_ADMIN.
func (h *RoleHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	role, err := h.roleUseCase.Create(c.Request.Context(), dto.ToCreateRoleInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusCreated, MessageRoleCreated, dto.ToRoleResponse(role))
}

// ListHandler returns every role.
// GET /api/v1/roles - Requires ROLE_ADMIN.
func (h *RoleHandler) ListHandler(c *gin.Context) {
	roles, err := h.roleUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, MessageRolesList, dto.ToRoleListResponse(roles))
}
