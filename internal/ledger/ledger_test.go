package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallet/sheetbook/internal/common"
	"github.com/jmallet/sheetbook/internal/drive"
	"github.com/jmallet/sheetbook/internal/model"
)

func newTestLedger(uploads Uploader) (*Ledger, *MockStore) {
	store := NewMockStore()
	store.CompanyRows = []model.Company{
		{ID: model.DefaultCompanyID, Name: "My Company", InvoicePrefix: "INV-"},
	}
	store.CounterRows = []model.InvoiceCounter{
		{CompanyID: model.DefaultCompanyID, NextNumber: 1},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, uploads, logger), store
}

func TestCreateCompany(t *testing.T) {
	lg, store := newTestLedger(nil)

	company, err := lg.CreateCompany(context.Background(), "Acme Consulting", "ACM-", nil, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(company.ID, "acme-consulting-"))
	assert.Equal(t, "ACM-", company.InvoicePrefix)

	require.Len(t, store.CompanyRows, 2)
	require.Len(t, store.CounterRows, 2)
	assert.Equal(t, company.ID, store.CounterRows[1].CompanyID)
	assert.Equal(t, 1, store.CounterRows[1].NextNumber)
}

func TestCreateCompanyWithLogo(t *testing.T) {
	uploads := &drive.MockUploader{}
	lg, store := newTestLedger(uploads)

	company, err := lg.CreateCompany(context.Background(), "Acme", "ACM-",
		strings.NewReader("png bytes"), "logo.png")
	require.NoError(t, err)
	assert.Equal(t, "https://drive.example/logo.png", company.LogoURL)
	assert.Equal(t, []string{"logo.png"}, uploads.Uploads)
	assert.Equal(t, company.LogoURL, store.CompanyRows[1].LogoURL)
}

func TestCreateCompanyLogoUploadFailureAbortsCleanly(t *testing.T) {
	uploads := &drive.MockUploader{Err: errors.New("storage full")}
	lg, store := newTestLedger(uploads)

	_, err := lg.CreateCompany(context.Background(), "Acme", "ACM-",
		strings.NewReader("png bytes"), "logo.png")
	require.Error(t, err)
	assert.False(t, common.IsPartial(err))
	assert.Len(t, store.CompanyRows, 1)
	assert.Equal(t, 0, store.CallCount("AppendCompany"))
}

func TestCreateCompanyCounterAppendFailureIsPartial(t *testing.T) {
	lg, store := newTestLedger(nil)
	store.FailOn("AppendInvoiceCounter", errors.New("quota exceeded"))

	company, err := lg.CreateCompany(context.Background(), "Acme", "ACM-", nil, "")
	require.Error(t, err)
	require.True(t, common.IsPartial(err))

	var pe *common.PartialError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"company row"}, pe.Completed)
	assert.Equal(t, "invoice counter row", pe.Failed)

	// The company row stays; the caller gets the half-created record back.
	assert.NotEmpty(t, company.ID)
	assert.Len(t, store.CompanyRows, 2)
	assert.Len(t, store.CounterRows, 1)
}

func TestDeleteCompany(t *testing.T) {
	lg, store := newTestLedger(nil)
	store.CompanyRows = append(store.CompanyRows, model.Company{ID: "acme", Name: "Acme"})
	store.CounterRows = append(store.CounterRows, model.InvoiceCounter{CompanyID: "acme", NextNumber: 5})

	require.NoError(t, lg.DeleteCompany(context.Background(), "acme"))

	require.Len(t, store.CompanyRows, 1)
	assert.Equal(t, model.DefaultCompanyID, store.CompanyRows[0].ID)
	require.Len(t, store.CounterRows, 1)
	assert.Equal(t, model.DefaultCompanyID, store.CounterRows[0].CompanyID)
}

func TestDeleteCompanyRefusesDefault(t *testing.T) {
	lg, store := newTestLedger(nil)

	err := lg.DeleteCompany(context.Background(), model.DefaultCompanyID)
	require.Error(t, err)

	var ue *common.UserError
	assert.ErrorAs(t, err, &ue)
	assert.Len(t, store.CompanyRows, 1)
	assert.Equal(t, 0, store.CallCount("DeleteCompanyAndCounterAt"))
}

func TestDeleteCompanyUnknownID(t *testing.T) {
	lg, _ := newTestLedger(nil)

	err := lg.DeleteCompany(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteCompanyToleratesMissingCounter(t *testing.T) {
	lg, store := newTestLedger(nil)
	store.CompanyRows = append(store.CompanyRows, model.Company{ID: "acme", Name: "Acme"})
	// No counter row for acme: the pairing is broken but the delete proceeds.

	require.NoError(t, lg.DeleteCompany(context.Background(), "acme"))
	assert.Len(t, store.CompanyRows, 1)
	assert.Len(t, store.CounterRows, 1)
}

func TestAddCategoryThenList(t *testing.T) {
	lg, _ := newTestLedger(nil)
	ctx := context.Background()

	category, err := lg.AddCategory(ctx, "Consulting", model.CategoryTypeIncome)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(category.ID, "consulting-"))

	categories, err := lg.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Consulting", categories[0].Name)
	assert.Equal(t, model.CategoryTypeIncome, categories[0].Type)
}

func TestAddCategoryInvalidType(t *testing.T) {
	lg, store := newTestLedger(nil)

	_, err := lg.AddCategory(context.Background(), "Misc", model.CategoryType("Mixed"))
	require.Error(t, err)
	assert.Equal(t, 0, store.CallCount("AppendCategory"))
}

func TestDeleteCategory(t *testing.T) {
	lg, store := newTestLedger(nil)
	store.CategoryRows = []model.Category{
		{ID: "rent-1", Name: "Rent", Type: model.CategoryTypeExpense},
		{ID: "food-1", Name: "Food", Type: model.CategoryTypeExpense},
	}

	require.NoError(t, lg.DeleteCategory(context.Background(), "rent-1"))
	require.Len(t, store.CategoryRows, 1)
	assert.Equal(t, "food-1", store.CategoryRows[0].ID)

	err := lg.DeleteCategory(context.Background(), "rent-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAddTransactionReceiptUploadFailureAborts(t *testing.T) {
	uploads := &drive.MockUploader{Err: errors.New("storage full")}
	lg, store := newTestLedger(uploads)

	err := lg.AddTransaction(context.Background(),
		model.Transaction{Date: "01/02/2024", Description: "supplies", Expense: decimal.NewFromInt(30)},
		strings.NewReader("pdf bytes"), "receipt.pdf")
	require.Error(t, err)
	assert.Empty(t, store.TransactionRows)
	assert.Equal(t, 0, store.CallCount("AppendTransaction"))
}

func TestAddTransactionWithReceipt(t *testing.T) {
	uploads := &drive.MockUploader{}
	lg, store := newTestLedger(uploads)

	err := lg.AddTransaction(context.Background(),
		model.Transaction{Date: "01/02/2024", Description: "supplies", Expense: decimal.NewFromInt(30)},
		strings.NewReader("pdf bytes"), "receipt.pdf")
	require.NoError(t, err)
	require.Len(t, store.TransactionRows, 1)
	assert.Equal(t, "https://drive.example/receipt.pdf", store.TransactionRows[0].ReceiptLink)
}

func TestPayBill(t *testing.T) {
	lg, store := newTestLedger(nil)
	store.BillRows = []model.Bill{{
		BillID:  "power-1",
		DueDate: "02/01/2024",
		Payee:   "Power Co",
		Amount:  decimal.RequireFromString("120.50"),
		Status:  model.BillStatusPending,
	}}

	require.NoError(t, lg.PayBill(context.Background(), "power-1", "01/15/2024"))

	assert.Equal(t, model.BillStatusPaid, store.BillRows[0].Status)
	require.Len(t, store.TransactionRows, 1)
	txn := store.TransactionRows[0]
	assert.Equal(t, "01/15/2024", txn.Date)
	assert.Equal(t, "Power Co", txn.CompanyName)
	assert.Equal(t, "Bills", txn.Category)
	assert.Equal(t, "Payment of bill power-1", txn.Description)
	assert.True(t, txn.Expense.Equal(decimal.RequireFromString("120.50")))
	assert.True(t, txn.Income.IsZero())
}

func TestPayBillAlreadyPaid(t *testing.T) {
	lg, store := newTestLedger(nil)
	store.BillRows = []model.Bill{{
		BillID: "power-1", Payee: "Power Co",
		Amount: decimal.NewFromInt(10), Status: model.BillStatusPaid,
	}}

	err := lg.PayBill(context.Background(), "power-1", "01/15/2024")
	require.Error(t, err)

	var ue *common.UserError
	assert.ErrorAs(t, err, &ue)
	assert.Empty(t, store.TransactionRows)
}

func TestPayBillTransactionAppendFailureIsPartial(t *testing.T) {
	lg, store := newTestLedger(nil)
	store.BillRows = []model.Bill{{
		BillID: "power-1", Payee: "Power Co",
		Amount: decimal.NewFromInt(10), Status: model.BillStatusPending,
	}}
	store.FailOn("AppendTransaction", errors.New("quota exceeded"))

	err := lg.PayBill(context.Background(), "power-1", "01/15/2024")
	require.Error(t, err)
	require.True(t, common.IsPartial(err))

	var pe *common.PartialError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"bill status"}, pe.Completed)
	assert.Equal(t, "expense transaction", pe.Failed)

	// The status flip is not reverted.
	assert.Equal(t, model.BillStatusPaid, store.BillRows[0].Status)
	assert.Empty(t, store.TransactionRows)
}

func TestAddBill(t *testing.T) {
	lg, store := newTestLedger(nil)

	bill, err := lg.AddBill(context.Background(), "Water Co", "03/01/2024", decimal.NewFromInt(45))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(bill.BillID, "water-co-"))
	assert.Equal(t, model.BillStatusPending, bill.Status)
	require.Len(t, store.BillRows, 1)
}

func TestSetInvoiceStatus(t *testing.T) {
	lg, store := newTestLedger(nil)
	store.InvoiceRows = []model.Invoice{{
		InvoiceID: "INV-001", CustomerName: "Customer", Status: model.InvoiceStatusDraft,
	}}

	require.NoError(t, lg.SetInvoiceStatus(context.Background(), "INV-001", model.InvoiceStatusSent))
	assert.Equal(t, model.InvoiceStatusSent, store.InvoiceRows[0].Status)

	err := lg.SetInvoiceStatus(context.Background(), "INV-001", model.InvoiceStatus("Overdue"))
	require.Error(t, err)
	assert.Equal(t, model.InvoiceStatusSent, store.InvoiceRows[0].Status)

	err = lg.SetInvoiceStatus(context.Background(), "INV-999", model.InvoiceStatusPaid)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
