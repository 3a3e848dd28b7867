package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmallet/sheetbook/internal/common"
	"github.com/jmallet/sheetbook/internal/model"
)

// MockStore is an in-memory Store for tests. It mirrors the positional
// semantics of the real adapter: list positions are 1-based slice indexes,
// deletes shift later rows, transactions list newest-first capped at 100.
// Failures are injected per method name.
type MockStore struct {
	mu sync.Mutex

	CompanyRows     []model.Company
	CategoryRows    []model.Category
	TransactionRows []model.Transaction
	BillRows        []model.Bill
	InvoiceRows     []model.Invoice
	CounterRows     []model.InvoiceCounter

	errs  map[string]error
	Calls []string
}

// NewMockStore returns an empty store.
func NewMockStore() *MockStore {
	return &MockStore{errs: make(map[string]error)}
}

// FailOn makes every subsequent call to the named method return err.
func (m *MockStore) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[method] = err
}

// CallCount returns how many calls the named method received.
func (m *MockStore) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (m *MockStore) enter(method string) error {
	m.Calls = append(m.Calls, method)
	return m.errs[method]
}

func (m *MockStore) ListCompanies(_ context.Context) ([]model.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListCompanies"); err != nil {
		return nil, err
	}
	out := make([]model.Company, len(m.CompanyRows))
	for i, c := range m.CompanyRows {
		c.RowPos = i + 1
		out[i] = c
	}
	return out, nil
}

func (m *MockStore) AppendCompany(_ context.Context, company model.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AppendCompany"); err != nil {
		return err
	}
	m.CompanyRows = append(m.CompanyRows, company)
	return nil
}

func (m *MockStore) DeleteCompanyAndCounterAt(_ context.Context, companyPos, counterPos int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("DeleteCompanyAndCounterAt"); err != nil {
		return err
	}
	if companyPos < 1 || companyPos > len(m.CompanyRows) {
		return fmt.Errorf("%w: company row %d", common.ErrRowOutOfRange, companyPos)
	}
	if counterPos > len(m.CounterRows) {
		return fmt.Errorf("%w: counter row %d", common.ErrRowOutOfRange, counterPos)
	}
	m.CompanyRows = append(m.CompanyRows[:companyPos-1], m.CompanyRows[companyPos:]...)
	if counterPos > 0 {
		m.CounterRows = append(m.CounterRows[:counterPos-1], m.CounterRows[counterPos:]...)
	}
	return nil
}

func (m *MockStore) ListCategories(_ context.Context) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListCategories"); err != nil {
		return nil, err
	}
	out := make([]model.Category, len(m.CategoryRows))
	for i, c := range m.CategoryRows {
		c.RowPos = i + 1
		out[i] = c
	}
	return out, nil
}

func (m *MockStore) AppendCategory(_ context.Context, category model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AppendCategory"); err != nil {
		return err
	}
	m.CategoryRows = append(m.CategoryRows, category)
	return nil
}

func (m *MockStore) DeleteCategoryAt(_ context.Context, pos int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("DeleteCategoryAt"); err != nil {
		return err
	}
	if pos < 1 || pos > len(m.CategoryRows) {
		return fmt.Errorf("%w: category row %d", common.ErrRowOutOfRange, pos)
	}
	m.CategoryRows = append(m.CategoryRows[:pos-1], m.CategoryRows[pos:]...)
	return nil
}

func (m *MockStore) ListTransactions(_ context.Context) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListTransactions"); err != nil {
		return nil, err
	}
	out := make([]model.Transaction, 0, len(m.TransactionRows))
	for i := len(m.TransactionRows) - 1; i >= 0; i-- {
		t := m.TransactionRows[i]
		t.RowPos = i + 1
		out = append(out, t)
	}
	if len(out) > 100 {
		out = out[:100]
	}
	return out, nil
}

func (m *MockStore) AppendTransaction(_ context.Context, txn model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AppendTransaction"); err != nil {
		return err
	}
	m.TransactionRows = append(m.TransactionRows, txn)
	return nil
}

func (m *MockStore) UpdateTransactionAt(_ context.Context, pos int, txn model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UpdateTransactionAt"); err != nil {
		return err
	}
	if pos < 1 || pos > len(m.TransactionRows) {
		return fmt.Errorf("%w: transaction row %d", common.ErrRowOutOfRange, pos)
	}
	m.TransactionRows[pos-1] = txn
	return nil
}

func (m *MockStore) DeleteTransactionAt(_ context.Context, pos int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("DeleteTransactionAt"); err != nil {
		return err
	}
	if pos < 1 || pos > len(m.TransactionRows) {
		return fmt.Errorf("%w: transaction row %d", common.ErrRowOutOfRange, pos)
	}
	m.TransactionRows = append(m.TransactionRows[:pos-1], m.TransactionRows[pos:]...)
	return nil
}

func (m *MockStore) ListBills(_ context.Context) ([]model.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListBills"); err != nil {
		return nil, err
	}
	out := make([]model.Bill, len(m.BillRows))
	for i, b := range m.BillRows {
		b.RowPos = i + 1
		out[i] = b
	}
	return out, nil
}

func (m *MockStore) AppendBill(_ context.Context, bill model.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AppendBill"); err != nil {
		return err
	}
	m.BillRows = append(m.BillRows, bill)
	return nil
}

func (m *MockStore) UpdateBillStatusAt(_ context.Context, pos int, status model.BillStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UpdateBillStatusAt"); err != nil {
		return err
	}
	if pos < 1 || pos > len(m.BillRows) {
		return fmt.Errorf("%w: bill row %d", common.ErrRowOutOfRange, pos)
	}
	m.BillRows[pos-1].Status = status
	return nil
}

func (m *MockStore) ListInvoices(_ context.Context) ([]model.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListInvoices"); err != nil {
		return nil, err
	}
	out := make([]model.Invoice, len(m.InvoiceRows))
	for i, inv := range m.InvoiceRows {
		inv.RowPos = i + 1
		out[i] = inv
	}
	return out, nil
}

func (m *MockStore) AppendInvoice(_ context.Context, invoice model.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AppendInvoice"); err != nil {
		return err
	}
	m.InvoiceRows = append(m.InvoiceRows, invoice)
	return nil
}

func (m *MockStore) UpdateInvoiceStatusAt(_ context.Context, pos int, status model.InvoiceStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UpdateInvoiceStatusAt"); err != nil {
		return err
	}
	if pos < 1 || pos > len(m.InvoiceRows) {
		return fmt.Errorf("%w: invoice row %d", common.ErrRowOutOfRange, pos)
	}
	m.InvoiceRows[pos-1].Status = status
	return nil
}

func (m *MockStore) ListInvoiceCounters(_ context.Context) ([]model.InvoiceCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListInvoiceCounters"); err != nil {
		return nil, err
	}
	out := make([]model.InvoiceCounter, len(m.CounterRows))
	for i, c := range m.CounterRows {
		c.RowPos = i + 1
		out[i] = c
	}
	return out, nil
}

func (m *MockStore) AppendInvoiceCounter(_ context.Context, counter model.InvoiceCounter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AppendInvoiceCounter"); err != nil {
		return err
	}
	m.CounterRows = append(m.CounterRows, counter)
	return nil
}

func (m *MockStore) PeekInvoiceNumber(_ context.Context, companyID string) (model.InvoiceCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("PeekInvoiceNumber"); err != nil {
		return model.InvoiceCounter{}, err
	}
	for i, c := range m.CounterRows {
		if c.CompanyID == companyID {
			c.RowPos = i + 1
			return c, nil
		}
	}
	return model.InvoiceCounter{}, fmt.Errorf("%w: company %s", common.ErrCounterMissing, companyID)
}

func (m *MockStore) CommitInvoiceNumber(_ context.Context, pos, next int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("CommitInvoiceNumber"); err != nil {
		return err
	}
	if pos < 1 || pos > len(m.CounterRows) {
		return fmt.Errorf("%w: counter row %d", common.ErrRowOutOfRange, pos)
	}
	m.CounterRows[pos-1].NextNumber = next
	return nil
}
