package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/redeemly/vouchers/internal/app"
	"github.com/redeemly/vouchers/internal/config"
	internalHTTP "github.com/redeemly/vouchers/internal/http"
)

// shutdownTimeout bounds how long in-flight requests may run once a
// shutdown signal arrives.
const shutdownTimeout = 30 * time.Second

// RunServer starts the voucher API server and, when metrics are enabled,
// the Prometheus scrape server. Blocks until SIGINT/SIGTERM or a server
// failure, then drains both servers within shutdownTimeout.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	// Initializes the full dependency graph: database, repositories,
	// use cases, handlers.
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	// Nil when metrics are disabled.
	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 2)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("api server error: %w", err)
		}
	}()

	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return shutdownServers(server, metricsServer, nil)
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		return shutdownServers(server, metricsServer, err)
	}
}

// shutdownServers drains the API and metrics servers, joining any shutdown
// errors with the cause that triggered the shutdown.
func shutdownServers(server *internalHTTP.Server, metricsServer *internalHTTP.MetricsServer, cause error) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if cause != nil {
		errs = append(errs, cause)
	}

	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("api server shutdown: %w", err))
		}
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}
