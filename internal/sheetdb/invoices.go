package sheetdb

import (
	"context"

	"github.com/jmallet/sheetbook/internal/model"
)

// invoiceStatusColumn is the single column targeted by status updates.
const invoiceStatusColumn = "I"

// ListInvoices returns every invoice row, in sheet order.
func (c *Client) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	rows, err := c.readTable(ctx, invoicesTable)
	if err != nil {
		return nil, err
	}

	var invoices []model.Invoice
	for i, row := range rows {
		rec := decodeInvoice(row, i+1)
		if rec.Empty() {
			continue
		}
		invoices = append(invoices, rec)
	}
	return invoices, nil
}

// AppendInvoice writes a new invoice row.
func (c *Client) AppendInvoice(ctx context.Context, invoice model.Invoice) error {
	return c.appendRow(ctx, invoicesTable, encodeInvoice(invoice))
}

// UpdateInvoiceStatusAt overwrites only the status cell of the invoice at pos.
func (c *Client) UpdateInvoiceStatusAt(ctx context.Context, pos int, status model.InvoiceStatus) error {
	return c.updateCell(ctx, invoicesTable, invoiceStatusColumn, pos, string(status))
}

// DeleteInvoiceAt removes the invoice row at pos.
func (c *Client) DeleteInvoiceAt(ctx context.Context, pos int) error {
	return c.deleteRow(ctx, invoicesTable, pos)
}
