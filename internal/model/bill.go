package model

import "github.com/shopspring/decimal"

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	// BillStatusPending marks a bill that has not been paid yet.
	BillStatusPending BillStatus = "Pending"
	// BillStatusPaid marks a settled bill.
	BillStatusPaid BillStatus = "Paid"
)

// Bill represents a single row in the Bills tab. Paying a bill flips its
// status and appends an expense Transaction; the bill row itself is never
// structurally changed by payment.
type Bill struct {
	BillID  string
	DueDate string
	Payee   string
	Amount  decimal.Decimal
	Status  BillStatus
	RowPos  int
}

// Empty reports whether the record carries no meaningful data.
func (b Bill) Empty() bool {
	return b.BillID == "" && b.Payee == ""
}
