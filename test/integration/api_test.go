// Package integration provides end-to-end tests for the inventory API.
// Tests run the full token pipeline against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsoftware/inventory/internal/app"
	"github.com/lsoftware/inventory/internal/config"
	"github.com/lsoftware/inventory/internal/testutil"
	userDomain "github.com/lsoftware/inventory/internal/user/domain"
)

const (
	adminUsername = "root"
	adminPassword = "Root-Passw0rd"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container  *app.Container
	db         *sql.DB
	server     *httptest.Server
	adminToken string
	dbDriver   string
}

// envelope mirrors the success and error bodies written by the API.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Path    string          `json:"path"`
}

// makeRequest performs an HTTP request and returns the response and body.
// token is sent as a Bearer credential when not empty.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body any,
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// login posts credentials and returns the raw token from the Authorization header.
func (ctx *integrationTestContext) login(t *testing.T, username, password string) (*http.Response, string) {
	t.Helper()

	resp, _ := ctx.makeRequest(t, http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	}, "")

	return resp, strings.TrimPrefix(resp.Header.Get("Authorization"), "Bearer ")
}

func decodeEnvelope(t *testing.T, body []byte, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

// setupIntegrationTest migrates the database, bootstraps an administrator and starts the API.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var (
		db  *sql.DB
		dsn string
	)
	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		DBDriver:               dbDriver,
		DBConnectionString:     dsn,
		DBMaxOpenConnections:   10,
		DBMaxIdleConnections:   5,
		DBConnMaxLifetime:      time.Hour,
		ServerHost:             "localhost",
		ServerPort:             8080,
		LogLevel:               "error",
		JWTSecretKey:           "integration-secret-key-with-32-bytes!",
		JWTTokenExpirationDays: 1,
		JWTAuthorizationHeader: "Authorization",
		JWTTokenPrefix:         "Bearer ",
		AuthLoginTimeout:       5 * time.Second,
	}

	container := app.NewContainer(cfg)

	userUseCase, err := container.UserUseCase()
	require.NoError(t, err, "failed to get user use case")

	_, err = userUseCase.Create(context.Background(), &userDomain.CreateUserInput{
		Document: "00000000",
		Name:     "Root",
		LastName: "Admin",
		Username: adminUsername,
		Password: adminPassword,
		RoleIDs:  []uuid.UUID{testutil.SeededRoleID("ADMIN")},
	})
	require.NoError(t, err, "failed to bootstrap administrator")

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	ctx := &integrationTestContext{
		container: container,
		db:        db,
		server:    httptest.NewServer(handler),
		dbDriver:  dbDriver,
	}

	resp, token := ctx.login(t, adminUsername, adminPassword)
	require.Equal(t, http.StatusOK, resp.StatusCode, "administrator login failed")
	require.NotEmpty(t, token)
	ctx.adminToken = token

	return ctx
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

var drivers = []struct {
	name     string
	dbDriver string
}{
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

// TestIntegration_Health_BasicChecks validates the health and readiness endpoints.
func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"status":"healthy"}`, string(body))

			resp, body = ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"status":"ready","components":{"database":"ok"}}`, string(body))
		})
	}
}

// TestIntegration_Auth_Rejections covers the error bodies of the token pipeline.
func TestIntegration_Auth_Rejections(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_BadPassword", func(t *testing.T) {
				resp, token := ctx.login(t, adminUsername, "wrong")
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Empty(t, token)
			})

			t.Run("02_Anonymous", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/roles", nil, "")
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				env := decodeEnvelope(t, body, nil)
				assert.Equal(t, "Access is denied", env.Message)
				assert.Equal(t, "/api/v1/roles", env.Path)
			})

			t.Run("03_TamperedToken", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/roles", nil, ctx.adminToken+"x")
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Equal(t, "Invalid Token", decodeEnvelope(t, body, nil).Message)
			})

			t.Run("04_UsernameIsCaseInsensitive", func(t *testing.T) {
				resp, token := ctx.login(t, strings.ToUpper(adminUsername), adminPassword)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.NotEmpty(t, token)
			})
		})
	}
}

// TestIntegration_Users_CompleteFlow walks a user through its whole lifecycle.
func TestIntegration_Users_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	type roleResponse struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	type userResponse struct {
		ID       uuid.UUID      `json:"id"`
		Username string         `json:"username"`
		Status   int            `json:"status"`
		Roles    []roleResponse `json:"roles"`
	}

	for _, tc := range drivers {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var (
				auditorRoleID uuid.UUID
				clerkID       uuid.UUID
				clerkToken    string
			)

			t.Run("01_ListSeededRoles", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/roles", nil, ctx.adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var roles []roleResponse
				decodeEnvelope(t, body, &roles)
				names := make([]string, 0, len(roles))
				for _, role := range roles {
					names = append(names, role.Name)
				}
				assert.ElementsMatch(t, []string{"ADMIN", "SUPERVISOR", "USER"}, names)
			})

			t.Run("02_CreateRole", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/roles", map[string]string{
					"name":        "auditor",
					"description": "Read only access",
				}, ctx.adminToken)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var role roleResponse
				decodeEnvelope(t, body, &role)
				assert.Equal(t, "AUDITOR", role.Name)
				auditorRoleID = role.ID
			})

			t.Run("03_CreateUser", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/users", map[string]any{
					"document": "12345678",
					"name":     "Carla",
					"lastName": "Clerk",
					"username": "clerk",
					"password": "Clerk-Passw0rd",
					"roles":    []string{testutil.SeededRoleID("USER").String()},
				}, ctx.adminToken)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var user userResponse
				env := decodeEnvelope(t, body, &user)
				assert.Equal(t, "User created", env.Message)
				assert.Equal(t, "CLERK", user.Username)
				assert.Equal(t, 1, user.Status)
				clerkID = user.ID
			})

			t.Run("04_DuplicateUsername", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/api/v1/users", map[string]any{
					"document": "87654321",
					"name":     "Other",
					"lastName": "Clerk",
					"username": "CLERK",
					"password": "Other-Passw0rd",
					"roles":    []string{testutil.SeededRoleID("USER").String()},
				}, ctx.adminToken)
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})

			t.Run("05_ClerkIsNotAdmin", func(t *testing.T) {
				resp, token := ctx.login(t, "clerk", "Clerk-Passw0rd")
				require.Equal(t, http.StatusOK, resp.StatusCode)
				clerkToken = token

				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/users", nil, clerkToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Equal(t, "Access is denied", decodeEnvelope(t, body, nil).Message)
			})

			t.Run("06_ListAndGet", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/users?offset=0&limit=10", nil, ctx.adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var page struct {
					Users []userResponse `json:"users"`
				}
				decodeEnvelope(t, body, &page)
				assert.Len(t, page.Users, 2)

				resp, body = ctx.makeRequest(t, http.MethodGet, "/api/v1/users/"+clerkID.String(), nil, ctx.adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var user userResponse
				decodeEnvelope(t, body, &user)
				assert.Equal(t, "CLERK", user.Username)
				require.Len(t, user.Roles, 1)
				assert.Equal(t, "USER", user.Roles[0].Name)
			})

			t.Run("07_UpdateRoles", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPut, "/api/v1/users/"+clerkID.String(), map[string]any{
					"name":     "Carla",
					"lastName": "Auditor",
					"status":   1,
					"roles":    []string{testutil.SeededRoleID("USER").String(), auditorRoleID.String()},
				}, ctx.adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var user userResponse
				decodeEnvelope(t, body, &user)
				assert.Len(t, user.Roles, 2)
			})

			t.Run("08_ChangePassword", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPut, "/api/v1/users/changePassword", map[string]string{
					"username":    "clerk",
					"oldPassword": "Clerk-Passw0rd",
					"newPassword": "Clerk-Passw0rd2",
				}, clerkToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				resp, _ = ctx.login(t, "clerk", "Clerk-Passw0rd")
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)

				resp, _ = ctx.login(t, "clerk", "Clerk-Passw0rd2")
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			})

			t.Run("09_Delete", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodDelete, "/api/v1/users/"+clerkID.String(), nil, ctx.adminToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/api/v1/users/"+clerkID.String(), nil, ctx.adminToken)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)

				resp, _ = ctx.login(t, "clerk", "Clerk-Passw0rd2")
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})
		})
	}
}
