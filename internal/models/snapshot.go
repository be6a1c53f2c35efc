package models

import (
	"github.com/shopspring/decimal"
)

// Department is the wire form of a department.
type Department struct {
	DepartmentID  string          `json:"departmentID"`
	Name          string          `json:"name"`
	UserCount     int             `json:"userCount"`
	TotalSpending decimal.Decimal `json:"totalSpending"`
	AuditFields
}

// User is the wire form of a user.
type User struct {
	UserID        string          `json:"userID"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	DepartmentID  string          `json:"departmentID"`
	TotalSpending decimal.Decimal `json:"totalSpending"`
	ExpenseCount  int             `json:"expenseCount"`
	AuditFields
}

// Expense is the wire form of an expense.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	UserID      string          `json:"userID"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	AuditFields
}

// Snapshot is the JSON document used to export and import the whole store.
// Entity arrays keep collection order; membership maps list child ids sorted.
type Snapshot struct {
	Departments       []Department        `json:"departments"`
	Users             []User              `json:"users"`
	Expenses          []Expense           `json:"expenses"`
	UsersByDepartment map[string][]string `json:"usersByDepartment"`
	ExpensesByUser    map[string][]string `json:"expensesByUser"`
}
