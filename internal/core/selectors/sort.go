package selectors

import (
	"slices"

	"github.com/kushalbajje/expense-management/internal/core/domain"
)

// SortExpensesByCreatedDesc returns a copy of expenses ordered newest first.
// Ties keep their relative order.
func SortExpensesByCreatedDesc(expenses []domain.Expense) []domain.Expense {
	out := slices.Clone(expenses)
	slices.SortStableFunc(out, func(a, b domain.Expense) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}
