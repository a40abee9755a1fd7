package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/redeemly/vouchers/internal/app"
	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
	authUseCase "github.com/redeemly/vouchers/internal/auth/usecase"
	"github.com/redeemly/vouchers/internal/config"
)

// RunCreateClient creates a new authentication client with capabilities.
// Outputs client ID and plain secret in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateClient(ctx context.Context, name string, isActive bool, capabilitiesStr, format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	clientUseCase, err := container.ClientUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize client use case: %w", err)
	}

	return createClient(ctx, clientUseCase, logger, name, isActive, capabilitiesStr, format, DefaultIO())
}

// createClient contains the create-client logic with injectable dependencies.
func createClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	name string,
	isActive bool,
	capabilitiesStr string,
	format string,
	ioTuple IOTuple,
) error {
	logger.Info("creating new client", slog.String("name", name))

	capabilities, err := parseCapabilities(capabilitiesStr)
	if err != nil {
		return err
	}

	input := &authDomain.CreateClientInput{
		Name:         name,
		IsActive:     isActive,
		Capabilities: capabilities,
	}

	output, err := clientUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if format == "json" {
		outputCreateClientJSON(output, ioTuple.Writer)
	} else {
		outputCreateClientText(output, ioTuple.Writer)
	}

	logger.Info("client created successfully",
		slog.String("client_id", output.ID.String()),
		slog.String("name", name),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// outputCreateClientText outputs the result in human-readable text format.
func outputCreateClientText(output *authDomain.CreateClientOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nClient created successfully!")
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", output.ID.String())
	_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
}

// outputCreateClientJSON outputs the result in JSON format for machine consumption.
func outputCreateClientJSON(output *authDomain.CreateClientOutput, writer io.Writer) {
	result := map[string]string{
		"client_id": output.ID.String(),
		"secret":    output.PlainSecret,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
