package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jmallet/sheetbook/internal/cli"
	"github.com/jmallet/sheetbook/internal/ofx"
)

func importCmd() *cobra.Command {
	var company string

	cmd := &cobra.Command{
		Use:   "import <file.ofx>",
		Short: "Import transactions from an OFX/QFX bank export",
		Long: `Parse a bank's OFX/QFX export and append each transaction to the
sheet. Rows are appended one at a time; if one append fails the import
stops there and the earlier rows stay.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0]) // #nosec G304
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			txns, err := ofx.NewParser().Parse(f, company)
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found in file."))
				return nil
			}

			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			bar := progressbar.Default(int64(len(txns)), "importing")
			for i, txn := range txns {
				if err := lg.AddTransaction(ctx, txn, nil, ""); err != nil {
					return fmt.Errorf("import stopped at transaction %d of %d: %w", i+1, len(txns), err)
				}
				_ = bar.Add(1)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Imported %d transactions", len(txns))))
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "company name to record on imported rows")
	return cmd
}
