package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	// InvoiceStatusDraft is the state every new invoice starts in.
	InvoiceStatusDraft InvoiceStatus = "Draft"
	// InvoiceStatusSent marks an invoice delivered to the customer.
	InvoiceStatusSent InvoiceStatus = "Sent"
	// InvoiceStatusPaid marks a settled invoice.
	InvoiceStatusPaid InvoiceStatus = "Paid"
	// InvoiceStatusVoid marks a cancelled invoice.
	InvoiceStatusVoid InvoiceStatus = "Void"
)

// ValidInvoiceStatus reports whether s is one of the recognized states.
func ValidInvoiceStatus(s string) bool {
	switch InvoiceStatus(s) {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// Invoice represents a single row in the Invoices tab.
type Invoice struct {
	InvoiceID       string
	TransactionID   string
	CompanyID       string
	CustomerName    string
	CustomerAddress string
	IssueDate       string
	DueDate         string
	TotalAmount     decimal.Decimal
	Status          InvoiceStatus
	RowPos          int
}

// Empty reports whether the record carries no meaningful data.
func (i Invoice) Empty() bool {
	return i.InvoiceID == "" && i.CustomerName == ""
}

// InvoiceCounter holds the next invoice number for one company. Every
// company row has exactly one counter row; the pair is created together and
// deleted together.
type InvoiceCounter struct {
	CompanyID  string
	NextNumber int
	RowPos     int
}

// Empty reports whether the record carries no meaningful data.
func (c InvoiceCounter) Empty() bool {
	return c.CompanyID == "" && c.NextNumber == 0
}

// FormatInvoiceID renders an invoice id from a company prefix and a sequence
// number, zero-padded to three digits: ("INV-", 7) -> "INV-007".
func FormatInvoiceID(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}
