package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmallet/sheetbook/internal/cli"
	"github.com/jmallet/sheetbook/internal/common"
	"github.com/jmallet/sheetbook/internal/ledger"
	"github.com/jmallet/sheetbook/internal/model"
)

func invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Manage invoices",
	}

	cmd.AddCommand(listInvoicesCmd())
	cmd.AddCommand(createInvoiceCmd())
	cmd.AddCommand(invoiceStatusCmd())
	return cmd
}

func listInvoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all invoices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			invoices, err := lg.Invoices(ctx)
			if err != nil {
				return fmt.Errorf("failed to list invoices: %w", err)
			}

			w := newTable()
			defer func() { _ = w.Flush() }()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Invoice"),
				cli.HeaderStyle.Render("Customer"),
				cli.HeaderStyle.Render("Issued"),
				cli.HeaderStyle.Render("Total"),
				cli.HeaderStyle.Render("Status"))
			for _, inv := range invoices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					inv.InvoiceID, inv.CustomerName, inv.IssueDate,
					inv.TotalAmount.String(), inv.Status)
			}
			return nil
		},
	}
}

func createInvoiceCmd() *cobra.Command {
	var (
		company  string
		customer string
		address  string
		due      string
		amount   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "create <description>",
		Short: "Invoice a customer",
		Long: `Record an income transaction together with its invoice and advance the
company's invoice counter. The three writes are not atomic; if one of
the later steps fails the error reports exactly which rows now exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}
			dueDate, err := parseDate(due)
			if err != nil {
				return err
			}

			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			req := ledger.InvoiceRequest{
				CompanyID:       company,
				CustomerName:    customer,
				CustomerAddress: address,
				IssueDate:       model.FormatDate(time.Now()),
				DueDate:         dueDate,
				Category:        category,
				Description:     args[0],
				Amount:          amt,
			}

			invoice, err := lg.CreateInvoicedTransaction(ctx, req)
			if err != nil {
				if common.IsPartial(err) {
					fmt.Println(cli.WarningStyle.Render("The operation did not finish cleanly; some rows were written."))
					fmt.Println(cli.WarningStyle.Render("Check the sheet before retrying, or you may duplicate data."))
				}
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Created invoice " + invoice.InvoiceID))
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", model.DefaultCompanyID, "issuing company id")
	cmd.Flags().StringVar(&customer, "customer", "", "customer name")
	cmd.Flags().StringVar(&address, "address", "", "customer address")
	cmd.Flags().StringVar(&due, "due", "", "due date (MM/DD/YYYY)")
	cmd.Flags().StringVar(&amount, "amount", "", "invoice total")
	cmd.Flags().StringVar(&category, "category", "", "income category name")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("due")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func invoiceStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <invoice-id> <Draft|Sent|Paid|Void>",
		Short: "Update an invoice's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lg, err := initLedger(ctx)
			if err != nil {
				return err
			}

			if err := lg.SetInvoiceStatus(ctx, args[0], model.InvoiceStatus(args[1])); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Invoice " + args[0] + " is now " + args[1]))
			return nil
		},
	}
}
