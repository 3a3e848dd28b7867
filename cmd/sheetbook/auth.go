package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jmallet/sheetbook/internal/auth"
	"github.com/jmallet/sheetbook/internal/cli"
	"github.com/jmallet/sheetbook/internal/config"
)

func authCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google",
		Long: `Run the interactive OAuth consent flow and save the resulting token.
Every other command acquires its credential from the saved token; run
this once before first use, or again if access was revoked.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadSheetConfig()
			if cfg.ClientID == "" || cfg.ClientSecret == "" {
				return fmt.Errorf("missing OAuth client credentials; set sheet.client_id and sheet.client_secret")
			}

			provider := auth.NewProvider(config.AuthConfig(cfg), slog.Default())
			if _, err := provider.Token(cmd.Context()); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Authenticated. Token saved to " + cfg.TokenFile))
			return nil
		},
	}
}
