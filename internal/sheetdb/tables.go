// Package sheetdb maps typed finance records onto named ranges in a Google
// spreadsheet. It is the persistence layer of the application: one tab per
// logical table, row 1 a protected header, and row position as the only
// handle for update and delete.
package sheetdb

import "fmt"

// Table describes the fixed column layout of one logical table. The offsets
// are contractually tied to the layout written by Provision; changing one
// without the other silently misaligns every decode.
type Table struct {
	Tab     string
	LastCol string
	Headers []string
}

// The six logical tables.
var (
	companiesTable = Table{
		Tab:     "Companies",
		LastCol: "D",
		Headers: []string{"ID", "Name", "Invoice Prefix", "Logo URL"},
	}
	categoriesTable = Table{
		Tab:     "Categories",
		LastCol: "C",
		Headers: []string{"ID", "Name", "Type"},
	}
	transactionsTable = Table{
		Tab:     "Transactions",
		LastCol: "H",
		Headers: []string{"Date", "Company", "Category", "Description", "Income", "Expense", "Receipt", "Invoice ID"},
	}
	billsTable = Table{
		Tab:     "Bills",
		LastCol: "E",
		Headers: []string{"Bill ID", "Due Date", "Payee", "Amount", "Status"},
	}
	invoicesTable = Table{
		Tab:     "Invoices",
		LastCol: "I",
		Headers: []string{"Invoice ID", "Transaction ID", "Company ID", "Customer", "Customer Address", "Issue Date", "Due Date", "Total", "Status"},
	}
	countersTable = Table{
		Tab:     "InvoiceCounters",
		LastCol: "B",
		Headers: []string{"Company ID", "Next Number"},
	}
)

func allTables() []Table {
	return []Table{
		companiesTable,
		categoriesTable,
		transactionsTable,
		billsTable,
		invoicesTable,
		countersTable,
	}
}

// dataRange addresses every data row of the table, header excluded.
func (t Table) dataRange() string {
	return fmt.Sprintf("%s!A2:%s", t.Tab, t.LastCol)
}

// rowRange addresses exactly one data row. pos is 1-based and
// header-exclusive, so data row 1 lives in sheet row 2.
func (t Table) rowRange(pos int) string {
	return fmt.Sprintf("%s!A%d:%s%d", t.Tab, pos+1, t.LastCol, pos+1)
}

// cellRange addresses a single cell of a data row.
func (t Table) cellRange(col string, pos int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", t.Tab, col, pos+1, col, pos+1)
}

// headerRange addresses the protected header row.
func (t Table) headerRange() string {
	return fmt.Sprintf("%s!A1:%s1", t.Tab, t.LastCol)
}
