package model

// CategoryType indicates whether a category applies to income or expenses.
type CategoryType string

const (
	// CategoryTypeIncome marks categories for money coming in.
	CategoryTypeIncome CategoryType = "Income"
	// CategoryTypeExpense marks categories for money going out.
	CategoryTypeExpense CategoryType = "Expense"
)

// ValidCategoryType reports whether s is one of the recognized category types.
func ValidCategoryType(s string) bool {
	switch CategoryType(s) {
	case CategoryTypeIncome, CategoryTypeExpense:
		return true
	}
	return false
}

// Category represents a transaction category.
type Category struct {
	ID     string
	Name   string
	Type   CategoryType
	RowPos int
}

// Empty reports whether the record carries no meaningful data.
func (c Category) Empty() bool {
	return c.ID == "" && c.Name == ""
}
