package dto

import (
	"time"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/kushalbajje/expense-management/internal/core/selectors"
	"github.com/kushalbajje/expense-management/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	UserID      string                 `json:"userID" label:"User" binding:"required"`
	Category    domain.ExpenseCategory `json:"category" label:"Category" binding:"required,expense_category"`
	Description string                 `json:"description" label:"Description" binding:"required"`
	Cost        decimal.Decimal        `json:"cost" label:"Cost" binding:"cost_positive,cost_max"`
}

// UpdateExpenseRequest replaces every editable field of an expense.
type UpdateExpenseRequest struct {
	UserID      string                 `json:"userID" label:"User" binding:"required"`
	Category    domain.ExpenseCategory `json:"category" label:"Category" binding:"required,expense_category"`
	Description string                 `json:"description" label:"Description" binding:"required"`
	Cost        decimal.Decimal        `json:"cost" label:"Cost" binding:"cost_positive,cost_max"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string                 `json:"expenseID"`
	UserID        string                 `json:"userID"`
	UserName      string                 `json:"userName,omitempty"`
	Category      domain.ExpenseCategory `json:"category"`
	Description   string                 `json:"description"`
	Cost          decimal.Decimal        `json:"cost"`
	FormattedCost string                 `json:"formattedCost"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

type ExpenseStatsResponse struct {
	TotalExpenses  int               `json:"totalExpenses"`
	TotalSpending  decimal.Decimal   `json:"totalSpending"`
	AverageExpense decimal.Decimal   `json:"averageExpense"`
	Formatted      map[string]string `json:"formatted"`
}

// ListExpensesResponse wraps the loaded pages of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse    `json:"expenses"`
	Stats    ExpenseStatsResponse `json:"stats"`
	PageMeta
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense, userName string) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		UserID:        e.UserID,
		UserName:      userName,
		Category:      e.Category,
		Description:   e.Description,
		Cost:          e.Cost,
		FormattedCost: utils.FormatCurrency(e.Cost),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// ToExpenseResponses converts expenses, resolving owner names through lookup.
func ToExpenseResponses(expenses []domain.Expense, lookup func(userID string) string) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i], lookup(expenses[i].UserID))
	}
	return responses
}

func ToExpenseStatsResponse(st selectors.ExpenseStats) ExpenseStatsResponse {
	return ExpenseStatsResponse{
		TotalExpenses:  st.TotalExpenses,
		TotalSpending:  st.TotalSpending,
		AverageExpense: st.AverageExpense,
		Formatted: map[string]string{
			"totalExpenses":  utils.FormatNumber(st.TotalExpenses),
			"totalSpending":  utils.FormatCurrency(st.TotalSpending),
			"averageExpense": utils.FormatCurrency(st.AverageExpense),
		},
	}
}
