package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the fixed calendar-date format used in every date cell.
// Dates round-trip as text; there is no timezone normalization beyond
// "local calendar date".
const DateLayout = "01/02/2006"

// Transaction represents a single row in the Transactions tab.
//
// Transactions have no stored id: the row position is the only handle for
// update and delete, and it is invalidated by any structural change to the
// tab. Exactly one of Income and Expense is non-zero per row; the other
// encodes as an empty cell.
type Transaction struct {
	Date        string
	CompanyName string
	Category    string
	Description string
	Income      decimal.Decimal
	Expense     decimal.Decimal
	ReceiptLink string
	InvoiceID   string
	RowPos      int
}

// Empty reports whether the record carries no meaningful data.
func (t Transaction) Empty() bool {
	return t.Date == "" && t.Description == "" && t.Income.IsZero() && t.Expense.IsZero()
}

// Amount returns whichever of Income and Expense is set.
func (t Transaction) Amount() decimal.Decimal {
	if !t.Income.IsZero() {
		return t.Income
	}
	return t.Expense
}

// IsIncome reports whether the transaction is on the income side.
func (t Transaction) IsIncome() bool {
	return !t.Income.IsZero()
}

// NewTransactionID generates a synthetic id for linking an invoice back to
// the transaction it was created with. Transaction rows themselves carry no
// id; this token is stored only inside the Invoice row.
func NewTransactionID() string {
	return uuid.NewString()
}

// FormatDate renders a time as a date cell.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateStrict parses a date cell, rejecting anything that is not in
// DateLayout. Command input uses this; cell decoding keeps malformed text
// as-is instead.
func ParseDateStrict(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
