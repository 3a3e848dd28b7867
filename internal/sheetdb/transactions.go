package sheetdb

import (
	"context"

	"github.com/jmallet/sheetbook/internal/model"
)

// transactionListLimit caps the list result set. This is a read-path bound,
// not a storage limit; older rows stay in the sheet.
const transactionListLimit = 100

// ListTransactions returns data rows most-recent-first, capped at 100.
// Ordering is append order reversed, not a date sort.
func (c *Client) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := c.readTable(ctx, transactionsTable)
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for i, row := range rows {
		rec := decodeTransaction(row, i+1)
		if rec.Empty() {
			continue
		}
		txns = append(txns, rec)
	}

	for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
		txns[i], txns[j] = txns[j], txns[i]
	}
	if len(txns) > transactionListLimit {
		txns = txns[:transactionListLimit]
	}
	return txns, nil
}

// AppendTransaction writes a new transaction row. The assigned row position
// is not returned; re-list to discover it.
func (c *Client) AppendTransaction(ctx context.Context, txn model.Transaction) error {
	return c.appendRow(ctx, transactionsTable, encodeTransaction(txn))
}

// UpdateTransactionAt overwrites the transaction row at pos.
func (c *Client) UpdateTransactionAt(ctx context.Context, pos int, txn model.Transaction) error {
	return c.updateRow(ctx, transactionsTable, pos, encodeTransaction(txn))
}

// DeleteTransactionAt removes the transaction row at pos, shifting every
// subsequent row up by one.
func (c *Client) DeleteTransactionAt(ctx context.Context, pos int) error {
	return c.deleteRow(ctx, transactionsTable, pos)
}
