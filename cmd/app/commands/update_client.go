package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/redeemly/vouchers/internal/app"
	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
	authUseCase "github.com/redeemly/vouchers/internal/auth/usecase"
	"github.com/redeemly/vouchers/internal/config"
)

// RunUpdateClient updates an existing authentication client's configuration.
// The name, active flag, and capability set are replaced with the given values.
//
// Requirements: Database must be migrated and accessible.
func RunUpdateClient(ctx context.Context, clientID, name string, isActive bool, capabilitiesStr string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	clientUseCase, err := container.ClientUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize client use case: %w", err)
	}

	return updateClient(ctx, clientUseCase, logger, clientID, name, isActive, capabilitiesStr, DefaultIO())
}

// updateClient contains the update-client logic with injectable dependencies.
func updateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	clientID, name string,
	isActive bool,
	capabilitiesStr string,
	ioTuple IOTuple,
) error {
	id, err := uuid.Parse(clientID)
	if err != nil {
		return fmt.Errorf("invalid client id: %w", err)
	}

	capabilities, err := parseCapabilities(capabilitiesStr)
	if err != nil {
		return err
	}

	input := &authDomain.UpdateClientInput{
		Name:         name,
		IsActive:     isActive,
		Capabilities: capabilities,
	}

	if err := clientUseCase.Update(ctx, id, input); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	_, _ = fmt.Fprintf(ioTuple.Writer, "Client %s updated successfully\n", id.String())

	logger.Info("client updated successfully",
		slog.String("client_id", id.String()),
		slog.String("name", name),
		slog.Bool("is_active", isActive),
	)

	return nil
}
