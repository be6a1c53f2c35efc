package reducer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CheckInvariants verifies referential integrity, aggregate consistency and
// department name uniqueness. It returns every violation found, joined.
func CheckInvariants(s *domain.Snapshot) error {
	if s == nil {
		return errors.New("nil snapshot")
	}
	return errors.Join(checkReferences(s), CheckAggregates(s), checkDepartmentNames(s))
}

// CheckAggregates verifies only the counts and sums stored on departments and
// users against the membership indexes. It holds under both reference policies.
func CheckAggregates(s *domain.Snapshot) error {
	var errs []error

	s.Users.Each(func(id string, u domain.User) bool {
		sum := decimal.Zero
		for _, expenseID := range s.ExpensesByUser.Members(id) {
			if e, ok := s.Expenses.Get(expenseID); ok {
				sum = sum.Add(e.Cost)
			}
		}
		if !u.TotalSpending.Equal(sum) {
			errs = append(errs, fmt.Errorf("user %s: totalSpending %s, expenses sum to %s", id, u.TotalSpending, sum))
		}
		if n := s.ExpensesByUser.Size(id); u.ExpenseCount != n {
			errs = append(errs, fmt.Errorf("user %s: expenseCount %d, owns %d expenses", id, u.ExpenseCount, n))
		}
		return true
	})

	s.Departments.Each(func(id string, dept domain.Department) bool {
		members := s.UsersByDepartment.Members(id)
		if dept.UserCount != len(members) {
			errs = append(errs, fmt.Errorf("department %s: userCount %d, has %d members", id, dept.UserCount, len(members)))
		}
		sum := decimal.Zero
		for _, userID := range members {
			if u, ok := s.Users.Get(userID); ok {
				sum = sum.Add(u.TotalSpending)
			}
		}
		if !dept.TotalSpending.Equal(sum) {
			errs = append(errs, fmt.Errorf("department %s: totalSpending %s, users sum to %s", id, dept.TotalSpending, sum))
		}
		return true
	})

	return errors.Join(errs...)
}

func checkReferences(s *domain.Snapshot) error {
	var errs []error

	s.Users.Each(func(id string, u domain.User) bool {
		if !s.Departments.Has(u.DepartmentID) {
			errs = append(errs, fmt.Errorf("user %s: unknown department %s", id, u.DepartmentID))
		}
		if !s.UsersByDepartment.Contains(u.DepartmentID, id) {
			errs = append(errs, fmt.Errorf("user %s: missing from department %s index", id, u.DepartmentID))
		}
		return true
	})
	s.Expenses.Each(func(id string, e domain.Expense) bool {
		if !s.Users.Has(e.UserID) {
			errs = append(errs, fmt.Errorf("expense %s: unknown user %s", id, e.UserID))
		}
		if !s.ExpensesByUser.Contains(e.UserID, id) {
			errs = append(errs, fmt.Errorf("expense %s: missing from user %s index", id, e.UserID))
		}
		return true
	})

	for _, deptID := range s.UsersByDepartment.Parents() {
		if !s.Departments.Has(deptID) {
			errs = append(errs, fmt.Errorf("users index: unknown department %s", deptID))
			continue
		}
		for _, userID := range s.UsersByDepartment.Members(deptID) {
			if u, ok := s.Users.Get(userID); !ok || u.DepartmentID != deptID {
				errs = append(errs, fmt.Errorf("users index: department %s lists foreign user %s", deptID, userID))
			}
		}
	}
	for _, userID := range s.ExpensesByUser.Parents() {
		if !s.Users.Has(userID) {
			errs = append(errs, fmt.Errorf("expenses index: unknown user %s", userID))
			continue
		}
		for _, expenseID := range s.ExpensesByUser.Members(userID) {
			if e, ok := s.Expenses.Get(expenseID); !ok || e.UserID != userID {
				errs = append(errs, fmt.Errorf("expenses index: user %s lists foreign expense %s", userID, expenseID))
			}
		}
	}

	return errors.Join(errs...)
}

func checkDepartmentNames(s *domain.Snapshot) error {
	var errs []error
	seen := make(map[string]string, s.Departments.Len())
	s.Departments.Each(func(id string, dept domain.Department) bool {
		key := strings.ToLower(strings.TrimSpace(dept.Name))
		if other, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("departments %s and %s share the name %q", other, id, dept.Name))
		}
		seen[key] = id
		return true
	})
	return errors.Join(errs...)
}
