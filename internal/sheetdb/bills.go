package sheetdb

import (
	"context"

	"github.com/jmallet/sheetbook/internal/model"
)

// billStatusColumn is the single column targeted by status updates.
const billStatusColumn = "E"

// ListBills returns every bill row, in sheet order.
func (c *Client) ListBills(ctx context.Context) ([]model.Bill, error) {
	rows, err := c.readTable(ctx, billsTable)
	if err != nil {
		return nil, err
	}

	var bills []model.Bill
	for i, row := range rows {
		rec := decodeBill(row, i+1)
		if rec.Empty() {
			continue
		}
		bills = append(bills, rec)
	}
	return bills, nil
}

// AppendBill writes a new bill row.
func (c *Client) AppendBill(ctx context.Context, bill model.Bill) error {
	return c.appendRow(ctx, billsTable, encodeBill(bill))
}

// UpdateBillStatusAt overwrites only the status cell of the bill at pos.
func (c *Client) UpdateBillStatusAt(ctx context.Context, pos int, status model.BillStatus) error {
	return c.updateCell(ctx, billsTable, billStatusColumn, pos, string(status))
}

// DeleteBillAt removes the bill row at pos.
func (c *Client) DeleteBillAt(ctx context.Context, pos int) error {
	return c.deleteRow(ctx, billsTable, pos)
}
