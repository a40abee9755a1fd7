// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/redeemly/vouchers/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Voucher management and redemption service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "create-client",
				Usage: "Create a new authentication client with capabilities",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Human-readable client name",
					},
					&cli.BoolFlag{
						Name:    "active",
						Aliases: []string{"a"},
						Value:   true,
						Usage:   "Whether the client can authenticate immediately",
					},
					&cli.StringFlag{
						Name:     "capabilities",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Comma-separated capabilities (manageVouchers, redeemVoucher)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateClient(
						ctx,
						cmd.String("name"),
						cmd.Bool("active"),
						cmd.String("capabilities"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "update-client",
				Usage: "Update an existing authentication client's configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Client ID (UUID)",
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Human-readable client name",
					},
					&cli.BoolFlag{
						Name:    "active",
						Aliases: []string{"a"},
						Value:   true,
						Usage:   "Whether the client can authenticate",
					},
					&cli.StringFlag{
						Name:     "capabilities",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Comma-separated capabilities (manageVouchers, redeemVoucher)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunUpdateClient(
						ctx,
						cmd.String("id"),
						cmd.String("name"),
						cmd.Bool("active"),
						cmd.String("capabilities"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
