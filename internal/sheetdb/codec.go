package sheetdb

import (
	"github.com/jmallet/sheetbook/internal/model"
)

// Range codec: pure, total translation between raw cell rows and typed
// records. The grid may hand back short or padded rows, so every decoder
// defaults missing cells (empty string, zero amount) instead of failing,
// and callers drop rows that decode to nothing via the Empty predicates.

// cell returns the i-th cell of a possibly short row.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func decodeCompany(row []string, pos int) model.Company {
	return model.Company{
		ID:            cell(row, 0),
		Name:          cell(row, 1),
		InvoicePrefix: cell(row, 2),
		LogoURL:       cell(row, 3),
		RowPos:        pos,
	}
}

func encodeCompany(c model.Company) []any {
	return []any{c.ID, c.Name, c.InvoicePrefix, c.LogoURL}
}

func decodeCategory(row []string, pos int) model.Category {
	return model.Category{
		ID:     cell(row, 0),
		Name:   cell(row, 1),
		Type:   model.CategoryType(cell(row, 2)),
		RowPos: pos,
	}
}

func encodeCategory(c model.Category) []any {
	return []any{c.ID, c.Name, string(c.Type)}
}

func decodeTransaction(row []string, pos int) model.Transaction {
	return model.Transaction{
		Date:        cell(row, 0),
		CompanyName: cell(row, 1),
		Category:    cell(row, 2),
		Description: cell(row, 3),
		Income:      model.LenientAmount(cell(row, 4)),
		Expense:     model.LenientAmount(cell(row, 5)),
		ReceiptLink: cell(row, 6),
		InvoiceID:   cell(row, 7),
		RowPos:      pos,
	}
}

func encodeTransaction(t model.Transaction) []any {
	return []any{
		t.Date,
		t.CompanyName,
		t.Category,
		t.Description,
		model.AmountCell(t.Income),
		model.AmountCell(t.Expense),
		t.ReceiptLink,
		t.InvoiceID,
	}
}

func decodeBill(row []string, pos int) model.Bill {
	return model.Bill{
		BillID:  cell(row, 0),
		DueDate: cell(row, 1),
		Payee:   cell(row, 2),
		Amount:  model.LenientAmount(cell(row, 3)),
		Status:  model.BillStatus(cell(row, 4)),
		RowPos:  pos,
	}
}

func encodeBill(b model.Bill) []any {
	return []any{b.BillID, b.DueDate, b.Payee, b.Amount.String(), string(b.Status)}
}

func decodeInvoice(row []string, pos int) model.Invoice {
	return model.Invoice{
		InvoiceID:       cell(row, 0),
		TransactionID:   cell(row, 1),
		CompanyID:       cell(row, 2),
		CustomerName:    cell(row, 3),
		CustomerAddress: cell(row, 4),
		IssueDate:       cell(row, 5),
		DueDate:         cell(row, 6),
		TotalAmount:     model.LenientAmount(cell(row, 7)),
		Status:          model.InvoiceStatus(cell(row, 8)),
		RowPos:          pos,
	}
}

func encodeInvoice(i model.Invoice) []any {
	return []any{
		i.InvoiceID,
		i.TransactionID,
		i.CompanyID,
		i.CustomerName,
		i.CustomerAddress,
		i.IssueDate,
		i.DueDate,
		i.TotalAmount.String(),
		string(i.Status),
	}
}

func decodeCounter(row []string, pos int) model.InvoiceCounter {
	return model.InvoiceCounter{
		CompanyID:  cell(row, 0),
		NextNumber: model.LenientInt(cell(row, 1)),
		RowPos:     pos,
	}
}

func encodeCounter(c model.InvoiceCounter) []any {
	return []any{c.CompanyID, c.NextNumber}
}
