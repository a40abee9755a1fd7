// Package http provides the gin API server and the Prometheus metrics server.
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

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
	authHTTP "github.com/redeemly/vouchers/internal/auth/http"
	authService "github.com/redeemly/vouchers/internal/auth/service"
	authUseCase "github.com/redeemly/vouchers/internal/auth/usecase"
	"github.com/redeemly/vouchers/internal/config"
	"github.com/redeemly/vouchers/internal/metrics"
	vouchersHTTP "github.com/redeemly/vouchers/internal/vouchers/http"
)

// Server represents the main API server.
type Server struct {
	db     *sql.DB
	host   string
	port   int
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new API server. The router is assembled separately via
// SetupRouter so tests can exercise handlers without the full dependency graph.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		host:   host,
		port:   port,
		logger: logger,
	}
}

// RouterDeps holds the handlers and services needed to assemble the API router.
type RouterDeps struct {
	Config          *config.Config
	TokenHandler    *authHTTP.TokenHandler
	VoucherHandler  *vouchersHTTP.VoucherHandler
	TokenUseCase    authUseCase.TokenUseCase
	TokenService    authService.TokenService
	MetricsProvider *metrics.Provider
}

// SetupRouter assembles the gin router with middleware and all API routes.
func (s *Server) SetupRouter(deps *RouterDeps) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			deps.MetricsProvider.MeterProvider(),
			deps.Config.MetricsNamespace,
		))
	}

	if corsMiddleware := createCORSMiddleware(
		deps.Config.CORSEnabled,
		deps.Config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authenticate := authHTTP.AuthenticationMiddleware(deps.TokenUseCase, deps.TokenService, s.logger)
	manage := authHTTP.AuthorizationMiddleware(authDomain.ManageVouchersCapability, s.logger)
	redeem := authHTTP.AuthorizationMiddleware(authDomain.RedeemVoucherCapability, s.logger)

	v1 := router.Group("/v1")
	v1.POST("/auth/token", deps.TokenHandler.IssueTokenHandler)

	vouchers := v1.Group("/vouchers", authenticate)
	if deps.Config.RateLimitEnabled {
		vouchers.Use(authHTTP.RateLimitMiddleware(
			deps.Config.RateLimitRequestsPerSec,
			deps.Config.RateLimitBurst,
			s.logger,
		))
	}
	vouchers.POST("", manage, deps.VoucherHandler.CreateHandler)
	vouchers.GET("", manage, deps.VoucherHandler.ListHandler)
	vouchers.GET("/:id", manage, deps.VoucherHandler.GetHandler)
	vouchers.PUT("/:id", manage, deps.VoucherHandler.UpdateHandler)
	vouchers.DELETE("/:id", manage, deps.VoucherHandler.DeleteHandler)
	vouchers.POST("/generate", manage, deps.VoucherHandler.GenerateHandler)
	vouchers.POST("/redeem", redeem, deps.VoucherHandler.RedeemHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness including database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the API server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
