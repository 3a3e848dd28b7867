// Package ledger sequences multi-step business operations over the
// spreadsheet accessors. The backing service has no transactions, so a
// composite operation either fully succeeds or leaves a diagnosable partial
// state; nothing here rolls back.
package ledger

import (
	"context"
	"io"

	"github.com/jmallet/sheetbook/internal/model"
)

// Store is the accessor surface the orchestrator composes. *sheetdb.Client
// implements it.
type Store interface {
	ListCompanies(ctx context.Context) ([]model.Company, error)
	AppendCompany(ctx context.Context, company model.Company) error
	DeleteCompanyAndCounterAt(ctx context.Context, companyPos, counterPos int) error

	ListCategories(ctx context.Context) ([]model.Category, error)
	AppendCategory(ctx context.Context, category model.Category) error
	DeleteCategoryAt(ctx context.Context, pos int) error

	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	AppendTransaction(ctx context.Context, txn model.Transaction) error
	UpdateTransactionAt(ctx context.Context, pos int, txn model.Transaction) error
	DeleteTransactionAt(ctx context.Context, pos int) error

	ListBills(ctx context.Context) ([]model.Bill, error)
	AppendBill(ctx context.Context, bill model.Bill) error
	UpdateBillStatusAt(ctx context.Context, pos int, status model.BillStatus) error

	ListInvoices(ctx context.Context) ([]model.Invoice, error)
	AppendInvoice(ctx context.Context, invoice model.Invoice) error
	UpdateInvoiceStatusAt(ctx context.Context, pos int, status model.InvoiceStatus) error

	ListInvoiceCounters(ctx context.Context) ([]model.InvoiceCounter, error)
	AppendInvoiceCounter(ctx context.Context, counter model.InvoiceCounter) error
	PeekInvoiceNumber(ctx context.Context, companyID string) (model.InvoiceCounter, error)
	CommitInvoiceNumber(ctx context.Context, pos, next int) error
}

// Uploader stores a binary attachment and returns a shareable link. Upload
// failure is a precondition failure: the table write never starts.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}
