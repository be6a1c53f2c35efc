package domain

import "github.com/shopspring/decimal"

// ExpenseCategory classifies an expense.
type ExpenseCategory string

const (
	CategorySupplies ExpenseCategory = "Supplies"
	CategorySoftware ExpenseCategory = "Software"
	CategoryGas      ExpenseCategory = "Gas"
	CategoryFood     ExpenseCategory = "Food"
	CategoryOther    ExpenseCategory = "Other"
)

// ExpenseCategories lists every valid category in display order.
var ExpenseCategories = []ExpenseCategory{
	CategorySupplies,
	CategorySoftware,
	CategoryGas,
	CategoryFood,
	CategoryOther,
}

// IsValid reports whether c is one of the known categories.
func (c ExpenseCategory) IsValid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a single spending record owned by a user.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	UserID      string          `json:"userID"` // FK -> User.UserID
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	AuditFields
}
