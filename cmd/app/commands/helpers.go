// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"

	"github.com/redeemly/vouchers/internal/app"
	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// parseCapabilities converts a comma-separated string into a slice of Capability.
// Only the known capabilities are accepted.
func parseCapabilities(input string) ([]authDomain.Capability, error) {
	parts := strings.Split(input, ",")
	capabilities := make([]authDomain.Capability, 0, len(parts))

	for _, part := range parts {
		capability := authDomain.Capability(strings.TrimSpace(part))
		if capability == "" {
			continue
		}

		switch capability {
		case authDomain.ManageVouchersCapability, authDomain.RedeemVoucherCapability:
			capabilities = append(capabilities, capability)
		default:
			return nil, fmt.Errorf(
				"invalid capability: %s (valid options: %s, %s)",
				capability,
				authDomain.ManageVouchersCapability,
				authDomain.RedeemVoucherCapability,
			)
		}
	}

	if len(capabilities) == 0 {
		return nil, fmt.Errorf("at least one capability is required")
	}

	return capabilities, nil
}
