package mapping

import (
	"fmt"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/kushalbajje/expense-management/internal/models"
)

// ToModelDepartment converts a domain Department to a model Department
func ToModelDepartment(d domain.Department) models.Department {
	return models.Department{
		DepartmentID:  d.DepartmentID,
		Name:          d.Name,
		UserCount:     d.UserCount,
		TotalSpending: d.TotalSpending,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDepartment converts a model Department to a domain Department
func ToDomainDepartment(m models.Department) domain.Department {
	return domain.Department{
		DepartmentID:  m.DepartmentID,
		Name:          m.Name,
		UserCount:     m.UserCount,
		TotalSpending: m.TotalSpending,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:        d.UserID,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		DepartmentID:  d.DepartmentID,
		TotalSpending: d.TotalSpending,
		ExpenseCount:  d.ExpenseCount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:        m.UserID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		DepartmentID:  m.DepartmentID,
		TotalSpending: m.TotalSpending,
		ExpenseCount:  m.ExpenseCount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		UserID:      d.UserID,
		Category:    string(d.Category),
		Description: d.Description,
		Cost:        d.Cost,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		UserID:      m.UserID,
		Category:    domain.ExpenseCategory(m.Category),
		Description: m.Description,
		Cost:        m.Cost,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSnapshot converts a domain Snapshot into its wire form.
func ToModelSnapshot(s *domain.Snapshot) models.Snapshot {
	m := models.Snapshot{
		Departments:       make([]models.Department, 0, s.Departments.Len()),
		Users:             make([]models.User, 0, s.Users.Len()),
		Expenses:          make([]models.Expense, 0, s.Expenses.Len()),
		UsersByDepartment: toModelIndex(s.UsersByDepartment),
		ExpensesByUser:    toModelIndex(s.ExpensesByUser),
	}
	s.Departments.Each(func(_ string, d domain.Department) bool {
		m.Departments = append(m.Departments, ToModelDepartment(d))
		return true
	})
	s.Users.Each(func(_ string, u domain.User) bool {
		m.Users = append(m.Users, ToModelUser(u))
		return true
	})
	s.Expenses.Each(func(_ string, e domain.Expense) bool {
		m.Expenses = append(m.Expenses, ToModelExpense(e))
		return true
	})
	return m
}

// ToDomainSnapshot converts a wire snapshot back into a domain Snapshot. It
// rejects documents with duplicate ids; consistency of aggregates and
// memberships is left to the caller.
func ToDomainSnapshot(m models.Snapshot) (*domain.Snapshot, error) {
	s := domain.NewSnapshot()
	for _, d := range m.Departments {
		if s.Departments.Has(d.DepartmentID) {
			return nil, fmt.Errorf("duplicate department id %q", d.DepartmentID)
		}
		s.Departments.Put(d.DepartmentID, ToDomainDepartment(d))
	}
	for _, u := range m.Users {
		if s.Users.Has(u.UserID) {
			return nil, fmt.Errorf("duplicate user id %q", u.UserID)
		}
		s.Users.Put(u.UserID, ToDomainUser(u))
	}
	for _, e := range m.Expenses {
		if s.Expenses.Has(e.ExpenseID) {
			return nil, fmt.Errorf("duplicate expense id %q", e.ExpenseID)
		}
		s.Expenses.Put(e.ExpenseID, ToDomainExpense(e))
	}
	fillIndex(s.UsersByDepartment, m.UsersByDepartment)
	fillIndex(s.ExpensesByUser, m.ExpensesByUser)
	return s, nil
}

func toModelIndex(idx *domain.MembershipIndex) map[string][]string {
	out := make(map[string][]string)
	for _, parent := range idx.Parents() {
		out[parent] = idx.Members(parent)
	}
	return out
}

func fillIndex(idx *domain.MembershipIndex, m map[string][]string) {
	for parent, children := range m {
		idx.Ensure(parent)
		for _, child := range children {
			idx.Add(parent, child)
		}
	}
}
