package domain

import "github.com/shopspring/decimal"

// User represents a member of a department who files expenses.
type User struct {
	UserID        string          `json:"userID"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	DepartmentID  string          `json:"departmentID"` // FK -> Department.DepartmentID
	TotalSpending decimal.Decimal `json:"totalSpending"`
	ExpenseCount  int             `json:"expenseCount"`
	AuditFields
}

// FullName joins first and last name with a single space.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
