package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jmallet/sheetbook/internal/auth"
	"github.com/jmallet/sheetbook/internal/cli"
	"github.com/jmallet/sheetbook/internal/config"
	"github.com/jmallet/sheetbook/internal/sheetdb"
)

func provisionCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create and seed a new backing spreadsheet",
		Long: `Create a fresh spreadsheet with the tab and column layout sheetbook
expects: one tab per table, protected header rows, the default company
with its invoice counter, and three starter categories.

Put the printed spreadsheet id into your config as sheet.spreadsheet_id.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadSheetConfig()
			if title != "" {
				cfg.Title = title
			}

			provider := auth.NewProvider(config.AuthConfig(cfg), slog.Default())
			id, err := sheetdb.Provision(cmd.Context(), cfg, provider, slog.Default())
			if err != nil {
				return fmt.Errorf("provisioning failed: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Spreadsheet created: " + id))
			fmt.Println(cli.InfoStyle.Render("Set sheet.spreadsheet_id to this value in your config."))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "spreadsheet title (default from config)")
	return cmd
}
