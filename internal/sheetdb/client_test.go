package sheetdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jmallet/sheetbook/internal/auth"
	"github.com/jmallet/sheetbook/internal/common"
	"github.com/jmallet/sheetbook/internal/model"
)

// newTestClient provisions a fresh in-memory spreadsheet and returns a
// client over it, seeded with the default company, its counter, and the
// starter categories.
func newTestClient(t *testing.T) (*Client, *fakeAPI) {
	t.Helper()

	f := newFakeAPI()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := newClientWithAPI(f, auth.Static("test-token"), logger)

	_, err := c.provision(context.Background(), "Test Ledger")
	require.NoError(t, err)
	return c, f
}

// deniedCreds is a credential source that always refuses.
type deniedCreds struct{}

func (deniedCreds) Token(_ context.Context) (*oauth2.Token, error) {
	return nil, errors.New("consent required")
}

func TestProvisionSeedsLayout(t *testing.T) {
	c, f := newTestClient(t)
	ctx := context.Background()

	companies, err := c.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, model.DefaultCompanyID, companies[0].ID)
	assert.Equal(t, "My Company", companies[0].Name)
	assert.Equal(t, "INV-", companies[0].InvoicePrefix)
	assert.Equal(t, 1, companies[0].RowPos)

	counters, err := c.ListInvoiceCounters(ctx)
	require.NoError(t, err)
	require.Len(t, counters, 1)
	assert.Equal(t, model.DefaultCompanyID, counters[0].CompanyID)
	assert.Equal(t, 1, counters[0].NextNumber)

	categories, err := c.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
	}
	assert.Equal(t, []string{"Salary", "Rent", "Supplies"}, names)

	// Every tab exists with its header row in place.
	for _, table := range allTables() {
		tab, ok := f.tabs[table.Tab]
		require.True(t, ok, "tab %s not created", table.Tab)
		require.NotEmpty(t, tab.grid, "tab %s has no header row", table.Tab)
		header := make([]string, len(tab.grid[0]))
		for i, v := range tab.grid[0] {
			header[i] = fmt.Sprint(v)
		}
		assert.Equal(t, table.Headers, header, "tab %s header", table.Tab)
	}
}

func TestAppendAssignsNextPositionWithoutMovingOthers(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.AppendCompany(ctx, model.Company{ID: "acme", Name: "Acme"}))
	require.NoError(t, c.AppendCompany(ctx, model.Company{ID: "globex", Name: "Globex"}))

	companies, err := c.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, 1, companies[0].RowPos)
	assert.Equal(t, "acme", companies[1].ID)
	assert.Equal(t, 2, companies[1].RowPos)
	assert.Equal(t, "globex", companies[2].ID)
	assert.Equal(t, 3, companies[2].RowPos)

	require.NoError(t, c.AppendCompany(ctx, model.Company{ID: "initech", Name: "Initech"}))

	companies, err = c.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 4)
	for i, company := range companies {
		assert.Equal(t, i+1, company.RowPos)
	}
	assert.Equal(t, "acme", companies[1].ID)
	assert.Equal(t, "globex", companies[2].ID)
}

func TestDeleteShiftsLaterPositionsOnly(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		require.NoError(t, c.AppendCategory(ctx, model.Category{
			ID:   model.Slugify(name),
			Name: name,
			Type: model.CategoryTypeExpense,
		}))
	}

	// Seed categories occupy positions 1 through 3; the new ones 4 through 6.
	require.NoError(t, c.DeleteCategoryAt(ctx, 5))

	categories, err := c.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 5)

	assert.Equal(t, "One", categories[3].Name)
	assert.Equal(t, 4, categories[3].RowPos)
	assert.Equal(t, "Three", categories[4].Name)
	assert.Equal(t, 5, categories[4].RowPos)
}

func TestListTransactionsNewestFirstCapped(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for i := 1; i <= 105; i++ {
		require.NoError(t, c.AppendTransaction(ctx, model.Transaction{
			Date:        "01/02/2024",
			Description: fmt.Sprintf("txn %d", i),
			Expense:     decimal.NewFromInt(int64(i)),
		}))
	}

	txns, err := c.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 100)

	assert.Equal(t, "txn 105", txns[0].Description)
	assert.Equal(t, 105, txns[0].RowPos)
	assert.Equal(t, "txn 6", txns[99].Description)
	assert.Equal(t, 6, txns[99].RowPos)
}

func TestListSurvivesMalformedCells(t *testing.T) {
	c, f := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.AppendTransaction(ctx, model.Transaction{
		Date:        "01/02/2024",
		Description: "good row",
		Income:      decimal.RequireFromString("10.00"),
	}))

	// A hand-edited row with garbage in the income cell and a date that is
	// not in the canonical layout.
	f.tabs["Transactions"].grid = append(f.tabs["Transactions"].grid,
		[]any{"sometime in March", "", "Misc", "hand edited", "lots", "", "", ""})

	txns, err := c.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "hand edited", txns[0].Description)
	assert.True(t, txns[0].Income.IsZero())
	assert.Equal(t, "sometime in March", txns[0].Date)
	assert.True(t, txns[1].Income.Equal(decimal.RequireFromString("10")))
	assert.True(t, txns[1].Expense.IsZero())
}

func TestTransactionCarriesExactlyOneAmount(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.AppendTransaction(ctx, model.Transaction{
		Date: "01/02/2024", Description: "income", Income: decimal.NewFromInt(100),
	}))
	require.NoError(t, c.AppendTransaction(ctx, model.Transaction{
		Date: "01/03/2024", Description: "expense", Expense: decimal.NewFromInt(40),
	}))

	txns, err := c.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	for _, txn := range txns {
		assert.False(t, !txn.Income.IsZero() && !txn.Expense.IsZero(),
			"transaction %q has both amounts", txn.Description)
	}
	assert.False(t, txns[0].IsIncome())
	assert.True(t, txns[1].IsIncome())
}

func TestListPadsShortRows(t *testing.T) {
	c, f := newTestClient(t)
	ctx := context.Background()

	// A row missing its trailing cells decodes with empty defaults.
	f.tabs["Bills"].grid = append(f.tabs["Bills"].grid, []any{"water-1", "03/01/2024"})

	bills, err := c.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "water-1", bills[0].BillID)
	assert.Equal(t, "", bills[0].Payee)
	assert.True(t, bills[0].Amount.IsZero())
	assert.Equal(t, model.BillStatus(""), bills[0].Status)
}

func TestPeekInvoiceNumber(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	counter, err := c.PeekInvoiceNumber(ctx, model.DefaultCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1, counter.NextNumber)
	assert.Equal(t, 1, counter.RowPos)

	// Peeking does not consume the number.
	again, err := c.PeekInvoiceNumber(ctx, model.DefaultCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.NextNumber)

	_, err = c.PeekInvoiceNumber(ctx, "nonexistent")
	assert.ErrorIs(t, err, common.ErrCounterMissing)
}

func TestCommitInvoiceNumber(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	counter, err := c.PeekInvoiceNumber(ctx, model.DefaultCompanyID)
	require.NoError(t, err)

	require.NoError(t, c.CommitInvoiceNumber(ctx, counter.RowPos, counter.NextNumber+1))

	after, err := c.PeekInvoiceNumber(ctx, model.DefaultCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.NextNumber)
	assert.Equal(t, model.DefaultCompanyID, after.CompanyID)
}

func TestStatusUpdatesTouchOnlyTheStatusCell(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.AppendBill(ctx, model.Bill{
		BillID:  "power-1",
		DueDate: "02/01/2024",
		Payee:   "Power Co",
		Amount:  decimal.RequireFromString("120.50"),
		Status:  model.BillStatusPending,
	}))
	require.NoError(t, c.UpdateBillStatusAt(ctx, 1, model.BillStatusPaid))

	bills, err := c.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, model.BillStatusPaid, bills[0].Status)
	assert.Equal(t, "Power Co", bills[0].Payee)
	assert.True(t, bills[0].Amount.Equal(decimal.RequireFromString("120.50")))

	require.NoError(t, c.AppendInvoice(ctx, model.Invoice{
		InvoiceID:    "INV-001",
		CompanyID:    model.DefaultCompanyID,
		CustomerName: "Customer",
		TotalAmount:  decimal.RequireFromString("500"),
		Status:       model.InvoiceStatusDraft,
	}))
	require.NoError(t, c.UpdateInvoiceStatusAt(ctx, 1, model.InvoiceStatusSent))

	invoices, err := c.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, model.InvoiceStatusSent, invoices[0].Status)
	assert.Equal(t, "Customer", invoices[0].CustomerName)
}

func TestDeleteCompanyAndCounterAt(t *testing.T) {
	c, f := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.AppendCompany(ctx, model.Company{ID: "acme", Name: "Acme"}))
	require.NoError(t, c.AppendInvoiceCounter(ctx, model.InvoiceCounter{CompanyID: "acme", NextNumber: 1}))

	before := f.callCount()
	require.NoError(t, c.DeleteCompanyAndCounterAt(ctx, 2, 2))

	// Two metadata reads resolve the sheet ids, then one batched structural
	// call removes both rows.
	assert.Equal(t, 3, f.callCount()-before)

	companies, err := c.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, model.DefaultCompanyID, companies[0].ID)

	counters, err := c.ListInvoiceCounters(ctx)
	require.NoError(t, err)
	require.Len(t, counters, 1)
	assert.Equal(t, model.DefaultCompanyID, counters[0].CompanyID)
}

func TestDeleteCompanyAndCounterAtBatchFailureLeavesBothRows(t *testing.T) {
	c, f := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.AppendCompany(ctx, model.Company{ID: "acme", Name: "Acme"}))
	require.NoError(t, c.AppendInvoiceCounter(ctx, model.InvoiceCounter{CompanyID: "acme", NextNumber: 4}))

	f.failOn("batchUpdate", "*", errors.New("backend unavailable"))
	err := c.DeleteCompanyAndCounterAt(ctx, 2, 2)
	require.Error(t, err)

	companies, err := c.ListCompanies(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 2)
	counters, err := c.ListInvoiceCounters(ctx)
	require.NoError(t, err)
	assert.Len(t, counters, 2)
}

func TestDeleteCompanyAndCounterAtWithoutCounter(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.AppendCompany(ctx, model.Company{ID: "acme", Name: "Acme"}))
	require.NoError(t, c.DeleteCompanyAndCounterAt(ctx, 2, 0))

	companies, err := c.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)

	counters, err := c.ListInvoiceCounters(ctx)
	require.NoError(t, err)
	assert.Len(t, counters, 1)
}

func TestNoCredentialMeansNoNetworkCall(t *testing.T) {
	f := newFakeAPI()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := newClientWithAPI(f, deniedCreds{}, logger)
	ctx := context.Background()

	_, err := c.ListCompanies(ctx)
	assert.ErrorIs(t, err, common.ErrNoCredential)

	err = c.AppendTransaction(ctx, model.Transaction{Description: "x"})
	assert.ErrorIs(t, err, common.ErrNoCredential)

	err = c.DeleteCategoryAt(ctx, 1)
	assert.ErrorIs(t, err, common.ErrNoCredential)

	assert.Equal(t, 0, f.callCount())
}

func TestEmptyAccessTokenIsNoCredential(t *testing.T) {
	f := newFakeAPI()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := newClientWithAPI(f, auth.Static(""), logger)

	_, err := c.ListBills(context.Background())
	assert.ErrorIs(t, err, common.ErrNoCredential)
	assert.Equal(t, 0, f.callCount())
}

func TestResolveSheetIDUnknownTab(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.resolveSheetID(context.Background(), "Nonexistent")
	assert.ErrorIs(t, err, common.ErrTabNotFound)
}

func TestRowPositionBounds(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	err := c.UpdateCompanyAt(ctx, 0, model.Company{ID: "x"})
	assert.ErrorIs(t, err, common.ErrRowOutOfRange)

	err = c.DeleteTransactionAt(ctx, -1)
	assert.ErrorIs(t, err, common.ErrRowOutOfRange)

	err = c.CommitInvoiceNumber(ctx, 0, 2)
	assert.ErrorIs(t, err, common.ErrRowOutOfRange)
}

func TestAppendFailureSurfacesTab(t *testing.T) {
	c, f := newTestClient(t)

	f.failOn("append", "Bills", errors.New("quota exceeded"))
	err := c.AppendBill(context.Background(), model.Bill{BillID: "b", Payee: "P"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bills")
}

func TestUpdateTransactionAt(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.AppendTransaction(ctx, model.Transaction{
		Date: "01/05/2024", Description: "before", Expense: decimal.NewFromInt(5),
	}))
	require.NoError(t, c.UpdateTransactionAt(ctx, 1, model.Transaction{
		Date: "01/06/2024", Description: "after", Expense: decimal.NewFromInt(7),
	}))

	txns, err := c.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "after", txns[0].Description)
	assert.Equal(t, "01/06/2024", txns[0].Date)
	assert.True(t, txns[0].Expense.Equal(decimal.NewFromInt(7)))
}
