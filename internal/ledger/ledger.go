package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/jmallet/sheetbook/internal/common"
	"github.com/jmallet/sheetbook/internal/model"
)

// Ledger composes accessor calls into the application's business operations.
type Ledger struct {
	store   Store
	uploads Uploader
	logger  *slog.Logger
}

// New creates a Ledger. uploads may be nil when attachments are not needed.
func New(store Store, uploads Uploader, logger *slog.Logger) *Ledger {
	return &Ledger{store: store, uploads: uploads, logger: logger}
}

// Companies lists every company. The sheet is re-read on each call; no
// cached copy is authoritative.
func (l *Ledger) Companies(ctx context.Context) ([]model.Company, error) {
	return l.store.ListCompanies(ctx)
}

// Categories lists every category.
func (l *Ledger) Categories(ctx context.Context) ([]model.Category, error) {
	return l.store.ListCategories(ctx)
}

// Transactions lists recent transactions, most recent first.
func (l *Ledger) Transactions(ctx context.Context) ([]model.Transaction, error) {
	return l.store.ListTransactions(ctx)
}

// Bills lists every bill.
func (l *Ledger) Bills(ctx context.Context) ([]model.Bill, error) {
	return l.store.ListBills(ctx)
}

// Invoices lists every invoice.
func (l *Ledger) Invoices(ctx context.Context) ([]model.Invoice, error) {
	return l.store.ListInvoices(ctx)
}

// CompanyByID returns the company with the given id.
func (l *Ledger) CompanyByID(ctx context.Context, id string) (model.Company, error) {
	companies, err := l.store.ListCompanies(ctx)
	if err != nil {
		return model.Company{}, err
	}
	for _, c := range companies {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Company{}, fmt.Errorf("%w: company %s", common.ErrNotFound, id)
}

// CreateCompany appends a company row and its invoice counter row. The two
// appends are independent calls with no atomicity: when the counter append
// fails the company row stays and the error says so, because silently
// rolling back would hide which half exists.
func (l *Ledger) CreateCompany(ctx context.Context, name, invoicePrefix string, logo io.Reader, logoName string) (model.Company, error) {
	company := model.Company{
		ID:            model.NewRecordID(name),
		Name:          name,
		InvoicePrefix: invoicePrefix,
	}

	if logo != nil {
		link, err := l.upload(ctx, logoName, logo)
		if err != nil {
			return model.Company{}, fmt.Errorf("logo upload failed, company not created: %w", err)
		}
		company.LogoURL = link
	}

	if err := l.store.AppendCompany(ctx, company); err != nil {
		return model.Company{}, err
	}

	counter := model.InvoiceCounter{CompanyID: company.ID, NextNumber: 1}
	if err := l.store.AppendInvoiceCounter(ctx, counter); err != nil {
		return company, common.NewPartialError("create company",
			[]string{"company row"}, "invoice counter row", err)
	}

	l.logger.Info("created company", "id", company.ID, "name", name)
	return company, nil
}

// DeleteCompany removes a company row and its counter row in one batched
// structural request. A missing counter row is tolerated: the company row
// is deleted alone and the broken pairing logged. The reserved default
// company cannot be deleted.
func (l *Ledger) DeleteCompany(ctx context.Context, companyID string) error {
	if companyID == model.DefaultCompanyID {
		return common.NewUserError("the default company cannot be deleted", nil)
	}

	company, err := l.CompanyByID(ctx, companyID)
	if err != nil {
		return err
	}

	counterPos := 0
	counters, err := l.store.ListInvoiceCounters(ctx)
	if err != nil {
		return err
	}
	for _, c := range counters {
		if c.CompanyID == companyID {
			counterPos = c.RowPos
			break
		}
	}
	if counterPos == 0 {
		l.logger.Warn("company has no counter row, deleting company only", "company", companyID)
	}

	return l.store.DeleteCompanyAndCounterAt(ctx, company.RowPos, counterPos)
}

// AddCategory appends a category.
func (l *Ledger) AddCategory(ctx context.Context, name string, categoryType model.CategoryType) (model.Category, error) {
	if !model.ValidCategoryType(string(categoryType)) {
		return model.Category{}, fmt.Errorf("invalid category type %q", categoryType)
	}

	category := model.Category{
		ID:   model.NewRecordID(name),
		Name: name,
		Type: categoryType,
	}
	if err := l.store.AppendCategory(ctx, category); err != nil {
		return model.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes the category with the given id. Transactions keep
// the category name they were written with; nothing cascades.
func (l *Ledger) DeleteCategory(ctx context.Context, id string) error {
	categories, err := l.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.ID == id {
			return l.store.DeleteCategoryAt(ctx, c.RowPos)
		}
	}
	return fmt.Errorf("%w: category %s", common.ErrNotFound, id)
}

// AddTransaction appends a transaction row, uploading the receipt first
// when one is given. Upload failure aborts before any table mutation.
func (l *Ledger) AddTransaction(ctx context.Context, txn model.Transaction, receipt io.Reader, receiptName string) error {
	if receipt != nil {
		link, err := l.upload(ctx, receiptName, receipt)
		if err != nil {
			return fmt.Errorf("receipt upload failed, transaction not recorded: %w", err)
		}
		txn.ReceiptLink = link
	}
	return l.store.AppendTransaction(ctx, txn)
}

// DeleteTransaction removes the transaction row at pos. Every retained row
// position for the tab is stale afterwards; re-list before the next
// position-addressed call.
func (l *Ledger) DeleteTransaction(ctx context.Context, pos int) error {
	return l.store.DeleteTransactionAt(ctx, pos)
}

// AddBill appends a bill row in Pending state.
func (l *Ledger) AddBill(ctx context.Context, payee, dueDate string, amount decimal.Decimal) (model.Bill, error) {
	bill := model.Bill{
		BillID:  model.NewRecordID(payee),
		DueDate: dueDate,
		Payee:   payee,
		Amount:  amount,
		Status:  model.BillStatusPending,
	}
	if err := l.store.AppendBill(ctx, bill); err != nil {
		return model.Bill{}, err
	}
	return bill, nil
}

// PayBill marks a bill Paid and spawns the matching expense transaction.
// The bill row is only value-updated, never structurally changed. If the
// transaction append fails after the status flip, the error reports the
// partial state instead of reverting the flip.
func (l *Ledger) PayBill(ctx context.Context, billID, date string) error {
	bills, err := l.store.ListBills(ctx)
	if err != nil {
		return err
	}

	var bill model.Bill
	found := false
	for _, b := range bills {
		if b.BillID == billID {
			bill = b
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: bill %s", common.ErrNotFound, billID)
	}
	if bill.Status == model.BillStatusPaid {
		return common.NewUserError(fmt.Sprintf("bill %s is already paid", billID), nil)
	}

	if err := l.store.UpdateBillStatusAt(ctx, bill.RowPos, model.BillStatusPaid); err != nil {
		return err
	}

	txn := model.Transaction{
		Date:        date,
		CompanyName: bill.Payee,
		Category:    "Bills",
		Description: fmt.Sprintf("Payment of bill %s", bill.BillID),
		Expense:     bill.Amount,
	}
	if err := l.store.AppendTransaction(ctx, txn); err != nil {
		return common.NewPartialError("pay bill",
			[]string{"bill status"}, "expense transaction", err)
	}

	l.logger.Info("paid bill", "bill", billID, "amount", bill.Amount)
	return nil
}

// SetInvoiceStatus updates the status cell of the invoice with the given id.
func (l *Ledger) SetInvoiceStatus(ctx context.Context, invoiceID string, status model.InvoiceStatus) error {
	if !model.ValidInvoiceStatus(string(status)) {
		return fmt.Errorf("invalid invoice status %q", status)
	}

	invoices, err := l.store.ListInvoices(ctx)
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		if inv.InvoiceID == invoiceID {
			return l.store.UpdateInvoiceStatusAt(ctx, inv.RowPos, status)
		}
	}
	return fmt.Errorf("%w: invoice %s", common.ErrNotFound, invoiceID)
}

func (l *Ledger) upload(ctx context.Context, name string, r io.Reader) (string, error) {
	if l.uploads == nil {
		return "", fmt.Errorf("no uploader configured")
	}
	return l.uploads.Upload(ctx, name, r)
}
