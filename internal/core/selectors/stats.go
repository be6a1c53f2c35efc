package selectors

import (
	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/shopspring/decimal"
)

type DepartmentStats struct {
	TotalDepartments int
	TotalUsers       int
	TotalSpending    decimal.Decimal
}

type UserStats struct {
	TotalUsers    int
	TotalSpending decimal.Decimal
	TotalExpenses int
}

type ExpenseStats struct {
	TotalExpenses  int
	TotalSpending  decimal.Decimal
	AverageExpense decimal.Decimal
}

func SummarizeDepartments(departments []domain.Department) DepartmentStats {
	st := DepartmentStats{TotalDepartments: len(departments), TotalSpending: decimal.Zero}
	for _, d := range departments {
		st.TotalUsers += d.UserCount
		st.TotalSpending = st.TotalSpending.Add(d.TotalSpending)
	}
	return st
}

func SummarizeUsers(users []domain.User) UserStats {
	st := UserStats{TotalUsers: len(users), TotalSpending: decimal.Zero}
	for _, u := range users {
		st.TotalSpending = st.TotalSpending.Add(u.TotalSpending)
		st.TotalExpenses += u.ExpenseCount
	}
	return st
}

// SummarizeExpenses totals the given expenses. The average is rounded to cents
// and is zero for an empty list.
func SummarizeExpenses(expenses []domain.Expense) ExpenseStats {
	st := ExpenseStats{TotalExpenses: len(expenses), TotalSpending: decimal.Zero, AverageExpense: decimal.Zero}
	for _, e := range expenses {
		st.TotalSpending = st.TotalSpending.Add(e.Cost)
	}
	if st.TotalExpenses > 0 {
		st.AverageExpense = st.TotalSpending.Div(decimal.NewFromInt(int64(st.TotalExpenses))).Round(2)
	}
	return st
}
