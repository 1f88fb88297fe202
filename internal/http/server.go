// Package http provides the HTTP servers and routing of the inventory API.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
	authHTTP "github.com/lsoftware/inventory/internal/auth/http"
	authUseCase "github.com/lsoftware/inventory/internal/auth/usecase"
	"github.com/lsoftware/inventory/internal/config"
	apperrors "github.com/lsoftware/inventory/internal/errors"
	"github.com/lsoftware/inventory/internal/httputil"
	"github.com/lsoftware/inventory/internal/metrics"
	userHTTP "github.com/lsoftware/inventory/internal/user/http"
)

const readinessTimeout = 2 * time.Second

// Server is the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates the API server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin router with all middleware and routes.
//
// Public routes: GET /health, GET /ready, POST /login.
// Every /api/v1 route runs the token verification middleware first and then
// the per-route authorization check.
//
// ctx bounds background work owned by the router (the login rate limiter cleanup).
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	tokenUseCase authUseCase.TokenUseCase,
	loginHandler *authHTTP.LoginHandler,
	userHandler *userHTTP.UserHandler,
	roleHandler *userHTTP.RoleHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		cfg.CORSEnabled,
		cfg.CORSAllowOrigins,
		cfg.JWTAuthorizationHeader,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	// Tokens are verified on every request, unmatched routes included.
	router.Use(SkipPaths(authHTTP.VerificationMiddleware(
		tokenUseCase,
		cfg.JWTAuthorizationHeader,
		cfg.JWTTokenPrefix,
		cfg.AuthEchoInvalidToken,
		s.logger,
	), "/login", "/health", "/ready"))

	router.NoRoute(func(c *gin.Context) {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, nil)
	})

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	loginChain := []gin.HandlerFunc{}
	if cfg.RateLimitLoginEnabled {
		loginChain = append(loginChain, authHTTP.LoginRateLimitMiddleware(
			ctx,
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			s.logger,
		))
	}
	loginChain = append(loginChain, loginHandler.LoginHandler)
	router.POST("/login", loginChain...)

	api := router.Group("/api/v1")

	requireAdmin := authHTTP.RequireAuthority(s.logger, authDomain.PermissionAdmin)

	users := api.Group("/users")
	{
		users.PUT("/changePassword", authHTTP.RequireAuthenticated(s.logger), userHandler.ChangePasswordHandler)
		users.POST("", requireAdmin, userHandler.CreateHandler)
		users.GET("", requireAdmin, userHandler.ListHandler)
		users.GET("/:id", requireAdmin, userHandler.GetHandler)
		users.PUT("/:id", requireAdmin, userHandler.UpdateHandler)
		users.DELETE("/:id", requireAdmin, userHandler.DeleteHandler)
	}

	roles := api.Group("/roles", requireAdmin)
	{
		roles.GET("", roleHandler.ListHandler)
		roles.POST("", roleHandler.CreateHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves requests until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the credential store is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		s.notReady(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		s.notReady(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

func (s *Server) notReady(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":     "not_ready",
		"components": gin.H{"database": "error"},
	})
}
