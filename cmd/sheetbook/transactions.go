package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmallet/sheetbook/internal/cli"
	"github.com/jmallet/sheetbook/internal/model"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
	}

	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(deleteTxCmd())
	return cmd
}

func listTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recent transactions",
		Long:  `Show the 100 most recent transactions, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			txns, err := lg.Transactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			w := newTable()
			defer func() { _ = w.Flush() }()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Row"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Company"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Income"),
				cli.HeaderStyle.Render("Expense"))
			for _, t := range txns {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					t.RowPos, t.Date, t.CompanyName, t.Description,
					model.AmountCell(t.Income), model.AmountCell(t.Expense))
			}
			return nil
		},
	}
}

func addTxCmd() *cobra.Command {
	var (
		company     string
		category    string
		date        string
		income      string
		expense     string
		receiptPath string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a transaction",
		Long: `Record an income or expense transaction. Give exactly one of --income
or --expense. If a receipt is attached it is uploaded first; a failed
upload aborts the whole add.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if (income == "") == (expense == "") {
				return fmt.Errorf("give exactly one of --income or --expense")
			}

			txn := model.Transaction{
				CompanyName: company,
				Category:    category,
				Description: args[0],
			}

			var err error
			if txn.Date, err = parseDate(date); err != nil {
				return err
			}
			if income != "" {
				if txn.Income, err = parseAmount(income); err != nil {
					return err
				}
			} else {
				if txn.Expense, err = parseAmount(expense); err != nil {
					return err
				}
			}

			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			var receipt *os.File
			receiptName := ""
			if receiptPath != "" {
				receipt, err = os.Open(receiptPath) // #nosec G304
				if err != nil {
					return fmt.Errorf("failed to open receipt: %w", err)
				}
				defer func() { _ = receipt.Close() }()
				receiptName = filepath.Base(receiptPath)
			}

			if err := lg.AddTransaction(ctx, txn, fileOrNil(receipt), receiptName); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Transaction recorded"))
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "company name")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	cmd.Flags().StringVar(&date, "date", model.FormatDate(time.Now()), "date (MM/DD/YYYY)")
	cmd.Flags().StringVar(&income, "income", "", "income amount")
	cmd.Flags().StringVar(&expense, "expense", "", "expense amount")
	cmd.Flags().StringVar(&receiptPath, "receipt", "", "path to a receipt to upload")
	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <row>",
		Short: "Delete a transaction by row position",
		Long: `Delete the transaction at the given row position, as shown by
'sheetbook tx list'. Positions below the deleted row shift up by one,
so re-run list before deleting again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pos, err := strconv.Atoi(args[0])
			if err != nil || pos < 1 {
				return fmt.Errorf("invalid row position %q", args[0])
			}

			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			if err := lg.DeleteTransaction(ctx, pos); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Transaction deleted"))
			fmt.Println(cli.SubtleStyle.Render("Row positions after the deleted row have shifted."))
			return nil
		},
	}
}
