// Package selectors derives read-only views over a snapshot. Nothing here
// mutates the snapshot it is given.
package selectors

import (
	"strings"

	"github.com/kushalbajje/expense-management/internal/core/domain"
)

// View is a filtered list of entities in collection order.
type View[T any] struct {
	Items       []T
	IsSearching bool
	TotalCount  int
}

// normalizeTerm trims and lower-cases a search term. An empty result means
// "not searching".
func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func containsAny(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func filter[T any](c *domain.Collection[T], term string, match func(T) bool) View[T] {
	term = normalizeTerm(term)
	if term == "" {
		items := c.Values()
		if items == nil {
			items = []T{}
		}
		return View[T]{Items: items, TotalCount: len(items)}
	}
	items := make([]T, 0)
	c.Each(func(_ string, v T) bool {
		if match(v) {
			items = append(items, v)
		}
		return true
	})
	return View[T]{Items: items, IsSearching: true, TotalCount: len(items)}
}

// SearchDepartments matches the term against department names.
func SearchDepartments(s *domain.Snapshot, term string) View[domain.Department] {
	needle := normalizeTerm(term)
	return filter(s.Departments, term, func(d domain.Department) bool {
		return containsAny(needle, d.Name)
	})
}

// SearchUsers matches the term against first, last and full name and the
// name of the user's department.
func SearchUsers(s *domain.Snapshot, term string) View[domain.User] {
	needle := normalizeTerm(term)
	return filter(s.Users, term, func(u domain.User) bool {
		return containsAny(needle, u.FirstName, u.LastName, u.FullName(), DepartmentName(s, u.DepartmentID))
	})
}

// SearchExpenses matches the term against description, category, the owner's
// full name and the cost rendered as a plain number.
func SearchExpenses(s *domain.Snapshot, term string) View[domain.Expense] {
	needle := normalizeTerm(term)
	return filter(s.Expenses, term, func(e domain.Expense) bool {
		return containsAny(needle, e.Description, string(e.Category), UserFullName(s, e.UserID), e.Cost.String())
	})
}

// UsersInDepartment lists the members of a department in user collection order.
func UsersInDepartment(s *domain.Snapshot, departmentID string) []domain.User {
	out := make([]domain.User, 0, s.UsersByDepartment.Size(departmentID))
	s.Users.Each(func(id string, u domain.User) bool {
		if s.UsersByDepartment.Contains(departmentID, id) {
			out = append(out, u)
		}
		return true
	})
	return out
}

// ExpensesOfUser lists the expenses owned by a user in expense collection order.
func ExpensesOfUser(s *domain.Snapshot, userID string) []domain.Expense {
	out := make([]domain.Expense, 0, s.ExpensesByUser.Size(userID))
	s.Expenses.Each(func(id string, e domain.Expense) bool {
		if s.ExpensesByUser.Contains(userID, id) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// DepartmentName resolves a department id to its name, or "" when unknown.
func DepartmentName(s *domain.Snapshot, id string) string {
	d, ok := s.Departments.Get(id)
	if !ok {
		return ""
	}
	return d.Name
}

// UserFullName resolves a user id to the user's full name, or "" when unknown.
func UserFullName(s *domain.Snapshot, id string) string {
	u, ok := s.Users.Get(id)
	if !ok {
		return ""
	}
	return u.FullName()
}
