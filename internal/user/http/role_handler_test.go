package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lsoftware/inventory/internal/user/domain"
	"github.com/lsoftware/inventory/internal/user/http/dto"
	usecaseMocks "github.com/lsoftware/inventory/internal/user/usecase/mocks"
)

func setupRoleTestHandler(t *testing.T) (*RoleHandler, *usecaseMocks.MockRoleUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	roleUseCase := &usecaseMocks.MockRoleUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRoleHandler(roleUseCase, logger), roleUseCase
}

func TestRoleHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, roleUseCase := setupRoleTestHandler(t)
		roles := []*domain.Role{
			{ID: uuid.Must(uuid.NewV7()), Name: "ADMIN", Description: "Administrator"},
			{ID: uuid.Must(uuid.NewV7()), Name: "SUPERVISOR", Description: "Supervisor"},
		}

		roleUseCase.On("List", mock.Anything).Return(roles, nil).Once()

		c, w := createTestContext(http.MethodGet, "/api/v1/roles", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeEnvelope(t, w)
		assert.Equal(t, MessageRolesList, body.Message)

		var data []dto.RoleResponse
		require.NoError(t, json.Unmarshal(body.Data, &data))
		require.Len(t, data, 2)
		assert.Equal(t, "ADMIN", data[0].Name)
	})

	t.Run("Success_EmptyIsArray", func(t *testing.T) {
		handler, roleUseCase := setupRoleTestHandler(t)

		roleUseCase.On("List", mock.Anything).Return([]*domain.Role{}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/api/v1/roles", nil)
		handler.ListHandler(c)

		assert.JSONEq(t, `{"status":200,"message":"Roles list","data":[]}`, w.Body.String())
	})
}

func TestRoleHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, roleUseCase := setupRoleTestHandler(t)
		role := &domain.Role{ID: uuid.Must(uuid.NewV7()), Name: "AUDITOR", Description: "Read only"}

		roleUseCase.On("Create", mock.Anything, &domain.CreateRoleInput{Name: "auditor", Description: "Read only"}).
			Return(role, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/v1/roles", map[string]string{
			"name":        "auditor",
			"description": "Read only",
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, MessageRoleCreated, decodeEnvelope(t, w).Message)
		roleUseCase.AssertExpectations(t)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		handler, roleUseCase := setupRoleTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/api/v1/roles", map[string]string{"name": "  "})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		roleUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		handler, roleUseCase := setupRoleTestHandler(t)

		roleUseCase.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrRoleAlreadyExists).Once()

		c, w := createTestContext(http.MethodPost, "/api/v1/roles", map[string]string{"name": "ADMIN"})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
