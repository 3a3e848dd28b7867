package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmallet/sheetbook/internal/cli"
	"github.com/jmallet/sheetbook/internal/common"
)

func companiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Manage companies",
	}

	cmd.AddCommand(listCompaniesCmd())
	cmd.AddCommand(addCompanyCmd())
	cmd.AddCommand(deleteCompanyCmd())
	return cmd
}

func listCompaniesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all companies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			companies, err := lg.Companies(ctx)
			if err != nil {
				return fmt.Errorf("failed to list companies: %w", err)
			}

			w := newTable()
			defer func() { _ = w.Flush() }()
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Prefix"))
			for _, c := range companies {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.InvoicePrefix)
			}
			return nil
		},
	}
}

func addCompanyCmd() *cobra.Command {
	var (
		prefix   string
		logoPath string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new company",
		Long: `Create a company with its invoice counter. If a logo is given it is
uploaded first; a failed upload aborts the whole add.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			var logo *os.File
			logoName := ""
			if logoPath != "" {
				logo, err = os.Open(logoPath) // #nosec G304
				if err != nil {
					return fmt.Errorf("failed to open logo: %w", err)
				}
				defer func() { _ = logo.Close() }()
				logoName = filepath.Base(logoPath)
			}

			company, err := lg.CreateCompany(ctx, args[0], prefix, fileOrNil(logo), logoName)
			if err != nil {
				if common.IsPartial(err) {
					fmt.Println(cli.WarningStyle.Render("Company was added, but its invoice counter was not."))
					fmt.Println(cli.WarningStyle.Render("Invoicing for it will fail until a counter row exists."))
				}
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Added company " + company.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "INV-", "invoice id prefix")
	cmd.Flags().StringVar(&logoPath, "logo", "", "path to a logo image to upload")
	return cmd
}

func deleteCompanyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a company and its invoice counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			if err := lg.DeleteCompany(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Deleted company " + args[0]))
			return nil
		},
	}
}
