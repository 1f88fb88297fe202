package app

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsoftware/inventory/internal/config"
	"github.com/lsoftware/inventory/internal/metrics"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:               "info",
		ServerHost:             "localhost",
		ServerPort:             8080,
		DBDriver:               "postgres",
		JWTSecretKey:           testSecret,
		JWTTokenExpirationDays: 14,
		JWTAuthorizationHeader: "Authorization",
		JWTTokenPrefix:         "Bearer ",
		AuthLoginTimeout:       time.Second,
		MetricsNamespace:       "test_app",
		MetricsPort:            8081,
	}
}

// withMockDB marks the container database as initialized with a sqlmock connection.
func withMockDB(t *testing.T, c *Container) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	c.dbInit.Do(func() { c.db = db })
	return mock
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig()

	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
	assert.Nil(t, container.logger)
	assert.Nil(t, container.db)
}

func TestContainer_Logger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "invalid"} {
		t.Run(level, func(t *testing.T) {
			cfg := testConfig()
			cfg.LogLevel = level
			container := NewContainer(cfg)

			logger := container.Logger()

			require.NotNil(t, logger)
			assert.Same(t, logger, container.Logger())
		})
	}
}

func TestContainer_DBErrorIsCached(t *testing.T) {
	cfg := testConfig()
	cfg.DBDriver = "invalid_driver"
	container := NewContainer(cfg)

	_, err := container.DB()
	require.Error(t, err)

	_, err2 := container.DB()
	assert.Equal(t, err, err2)

	_, err = container.TokenUseCase()
	assert.ErrorContains(t, err, "failed to connect to database")
}

func TestContainer_UnsupportedDriverRepository(t *testing.T) {
	cfg := testConfig()
	cfg.DBDriver = "sqlite"
	container := NewContainer(cfg)
	withMockDB(t, container)

	_, err := container.UserRepository()
	assert.ErrorContains(t, err, "unsupported database driver: sqlite")

	_, err = container.RoleRepository()
	assert.ErrorContains(t, err, "unsupported database driver: sqlite")
}

func TestContainer_Repositories(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig()
			cfg.DBDriver = driver
			container := NewContainer(cfg)
			withMockDB(t, container)

			users, err := container.UserRepository()
			require.NoError(t, err)
			assert.NotNil(t, users)

			roles, err := container.RoleRepository()
			require.NoError(t, err)
			assert.NotNil(t, roles)
		})
	}
}

func TestContainer_SigningKey(t *testing.T) {
	t.Run("PlainSecret", func(t *testing.T) {
		container := NewContainer(testConfig())

		key, err := container.SigningKey()

		require.NoError(t, err)
		assert.Equal(t, []byte(testSecret), key.Bytes())
	})

	t.Run("TooShort", func(t *testing.T) {
		cfg := testConfig()
		cfg.JWTSecretKey = "short"
		container := NewContainer(cfg)

		_, err := container.SigningKey()
		require.Error(t, err)

		_, err = container.ClaimsCodec()
		assert.ErrorContains(t, err, "failed to get signing key for claims codec")
	})
}

func TestContainer_Singletons(t *testing.T) {
	container := NewContainer(testConfig())

	passwords, err := container.PasswordService()
	require.NoError(t, err)
	passwords2, err := container.PasswordService()
	require.NoError(t, err)
	assert.Same(t, passwords, passwords2)

	assert.NotNil(t, container.AuthorityMapper())
	assert.Equal(t, container.AuthorityMapper(), container.AuthorityMapper())
}

func TestContainer_MetricsDisabled(t *testing.T) {
	container := NewContainer(testConfig())

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	businessMetrics, err := container.BusinessMetrics()
	require.NoError(t, err)
	assert.IsType(t, &metrics.NoOpBusinessMetrics{}, businessMetrics)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.Nil(t, metricsServer)
}

func TestContainer_MetricsEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true
	container := NewContainer(cfg)
	defer func() { assert.NoError(t, container.Shutdown(context.Background())) }()

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	require.NotNil(t, provider)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContainer_HTTPServer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.MetricsEnabled = true
	cfg.RateLimitLoginEnabled = true
	cfg.RateLimitLoginRequestsPerSec = 5
	cfg.RateLimitLoginBurst = 10
	container := NewContainer(cfg)
	dbMock := withMockDB(t, container)
	dbMock.ExpectPing()
	dbMock.ExpectClose()

	server, err := container.HTTPServer()
	require.NoError(t, err)

	server2, err := container.HTTPServer()
	require.NoError(t, err)
	assert.Same(t, server, server2)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, container.Shutdown(context.Background()))
	assert.ErrorIs(t, container.ctx.Err(), context.Canceled)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestContainer_Shutdown(t *testing.T) {
	t.Run("NothingInitialized", func(t *testing.T) {
		container := NewContainer(testConfig())

		assert.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("CloseError", func(t *testing.T) {
		container := NewContainer(testConfig())
		dbMock := withMockDB(t, container)
		dbMock.ExpectClose().WillReturnError(sql.ErrConnDone)

		err := container.Shutdown(context.Background())

		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}
