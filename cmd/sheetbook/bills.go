package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmallet/sheetbook/internal/cli"
	"github.com/jmallet/sheetbook/internal/common"
	"github.com/jmallet/sheetbook/internal/model"
)

func billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Manage bills",
	}

	cmd.AddCommand(listBillsCmd())
	cmd.AddCommand(addBillCmd())
	cmd.AddCommand(payBillCmd())
	return cmd
}

func listBillsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all bills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			bills, err := lg.Bills(ctx)
			if err != nil {
				return fmt.Errorf("failed to list bills: %w", err)
			}

			w := newTable()
			defer func() { _ = w.Flush() }()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Due"),
				cli.HeaderStyle.Render("Payee"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Status"))
			for _, b := range bills {
				status := string(b.Status)
				if b.Status == model.BillStatusPending {
					status = cli.WarningStyle.Render(status)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					b.BillID, b.DueDate, b.Payee, b.Amount.String(), status)
			}
			return nil
		},
	}
}

func addBillCmd() *cobra.Command {
	var (
		due    string
		amount string
	)

	cmd := &cobra.Command{
		Use:   "add <payee>",
		Short: "Add a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dueDate, err := parseDate(due)
			if err != nil {
				return err
			}
			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}

			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			bill, err := lg.AddBill(ctx, args[0], dueDate, amt)
			if err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Added bill " + bill.BillID))
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "due date (MM/DD/YYYY)")
	cmd.Flags().StringVar(&amount, "amount", "", "bill amount")
	_ = cmd.MarkFlagRequired("due")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func payBillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <bill-id>",
		Short: "Pay a bill",
		Long: `Mark a bill as paid and record the matching expense transaction.
If the expense cannot be recorded after the status change, the bill
stays marked paid and the error says which half happened.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			if err := lg.PayBill(ctx, args[0], model.FormatDate(time.Now())); err != nil {
				if common.IsPartial(err) {
					fmt.Println(cli.WarningStyle.Render("Bill is marked paid, but no expense transaction was recorded."))
				}
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Bill paid"))
			return nil
		},
	}
}
