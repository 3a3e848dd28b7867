package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jmallet/sheetbook/internal/common"
	"github.com/jmallet/sheetbook/internal/model"
)

// InvoiceRequest carries everything needed to invoice a customer.
type InvoiceRequest struct {
	CompanyID       string
	CustomerName    string
	CustomerAddress string
	IssueDate       string
	DueDate         string
	Category        string
	Description     string
	Amount          decimal.Decimal
}

// CreateInvoicedTransaction records an income transaction together with its
// invoice and advances the company's invoice counter. Three writes, no
// transaction around them; each step's failure reports how far the
// operation got:
//
//  1. counter peek fails        -> clean abort, nothing changed
//  2. transaction append fails  -> clean abort, nothing durable yet
//  3. invoice append fails      -> partial: a transaction now references an
//     invoice that does not exist
//  4. counter commit fails      -> partial: transaction and invoice exist
//     but the counter did not advance, so the next invoice for this
//     company will mint the same invoice id
//
// The last case is a known gap carried over from the counter design: with
// no conditional write on the backing service there is nothing to anchor a
// fix to, so the error message is loud instead.
func (l *Ledger) CreateInvoicedTransaction(ctx context.Context, req InvoiceRequest) (model.Invoice, error) {
	company, err := l.CompanyByID(ctx, req.CompanyID)
	if err != nil {
		return model.Invoice{}, err
	}

	counter, err := l.store.PeekInvoiceNumber(ctx, req.CompanyID)
	if err != nil {
		return model.Invoice{}, err
	}

	invoiceID := model.FormatInvoiceID(company.InvoicePrefix, counter.NextNumber)
	transactionID := model.NewTransactionID()

	txn := model.Transaction{
		Date:        req.IssueDate,
		CompanyName: company.Name,
		Category:    req.Category,
		Description: req.Description,
		Income:      req.Amount,
		InvoiceID:   invoiceID,
	}
	if err := l.store.AppendTransaction(ctx, txn); err != nil {
		return model.Invoice{}, fmt.Errorf("invoice %s not created: %w", invoiceID, err)
	}

	invoice := model.Invoice{
		InvoiceID:       invoiceID,
		TransactionID:   transactionID,
		CompanyID:       company.ID,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		IssueDate:       req.IssueDate,
		DueDate:         req.DueDate,
		TotalAmount:     req.Amount,
		Status:          model.InvoiceStatusDraft,
	}
	if err := l.store.AppendInvoice(ctx, invoice); err != nil {
		return model.Invoice{}, common.NewPartialError("create invoice "+invoiceID,
			[]string{"transaction row"}, "invoice row", err)
	}

	if err := l.store.CommitInvoiceNumber(ctx, counter.RowPos, counter.NextNumber+1); err != nil {
		return invoice, common.NewPartialError("create invoice "+invoiceID,
			[]string{"transaction row", "invoice row"}, "counter advance",
			fmt.Errorf("the next invoice for %s will reuse id %s: %w", company.Name, invoiceID, err))
	}

	l.logger.Info("created invoice",
		"invoice_id", invoiceID,
		"company", company.Name,
		"amount", req.Amount)
	return invoice, nil
}
