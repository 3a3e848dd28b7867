package sheetdb

import (
	"context"
	"fmt"

	"github.com/jmallet/sheetbook/internal/common"
	"github.com/jmallet/sheetbook/internal/model"
)

// counterValueColumn holds the next-number cell.
const counterValueColumn = "B"

// ListInvoiceCounters returns every counter row, in sheet order.
func (c *Client) ListInvoiceCounters(ctx context.Context) ([]model.InvoiceCounter, error) {
	rows, err := c.readTable(ctx, countersTable)
	if err != nil {
		return nil, err
	}

	var counters []model.InvoiceCounter
	for i, row := range rows {
		rec := decodeCounter(row, i+1)
		if rec.Empty() {
			continue
		}
		counters = append(counters, rec)
	}
	return counters, nil
}

// AppendInvoiceCounter writes a new counter row.
func (c *Client) AppendInvoiceCounter(ctx context.Context, counter model.InvoiceCounter) error {
	return c.appendRow(ctx, countersTable, encodeCounter(counter))
}

// PeekInvoiceNumber reads the counter for companyID without consuming it.
// A missing counter row is a data-integrity fault, not an empty case: the
// provisioning and company-creation paths always pair a counter with each
// company, so absence means the pairing broke.
//
// There is no lock between this read and CommitInvoiceNumber. Two
// concurrent invoice creations for the same company can read the same
// number and mint duplicate invoice ids; the backing service offers no
// conditional write to close the window.
func (c *Client) PeekInvoiceNumber(ctx context.Context, companyID string) (model.InvoiceCounter, error) {
	counters, err := c.ListInvoiceCounters(ctx)
	if err != nil {
		return model.InvoiceCounter{}, err
	}

	for _, counter := range counters {
		if counter.CompanyID == companyID {
			return counter, nil
		}
	}
	return model.InvoiceCounter{}, fmt.Errorf("%w: company %s", common.ErrCounterMissing, companyID)
}

// CommitInvoiceNumber overwrites the counter value cell at pos. The value
// must only ever move forward; callers pass the peeked number plus one.
func (c *Client) CommitInvoiceNumber(ctx context.Context, pos, next int) error {
	return c.updateCell(ctx, countersTable, counterValueColumn, pos, next)
}

// DeleteInvoiceCounterAt removes the counter row at pos.
func (c *Client) DeleteInvoiceCounterAt(ctx context.Context, pos int) error {
	return c.deleteRow(ctx, countersTable, pos)
}
