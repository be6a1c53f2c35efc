package reducer

import (
	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (d *draft) createUser(op CreateUser) domain.Result {
	if d.env.strict() && !d.next.Departments.Has(op.DepartmentID) {
		return skipped(domain.StatusMissingReference, op.DepartmentID)
	}
	id := d.newID()
	d.users().Put(id, domain.User{
		UserID:        id,
		FirstName:     op.FirstName,
		LastName:      op.LastName,
		DepartmentID:  op.DepartmentID,
		TotalSpending: decimal.Zero,
		AuditFields:   domain.NewAuditFields(d.now),
	})
	d.usersByDepartment().Add(op.DepartmentID, id)
	d.expensesByUser().Ensure(id)
	d.adjustDepartment(op.DepartmentID, 1, decimal.Zero)
	return applied(id)
}

// updateUser renames a user and, when the department changes, carries the
// user's membership, head count and spending over to the new department.
func (d *draft) updateUser(op UpdateUser) domain.Result {
	user, ok := d.next.Users.Get(op.ID)
	if !ok {
		return skipped(domain.StatusNotFound, op.ID)
	}
	from := user.DepartmentID
	moving := from != op.DepartmentID
	if moving && d.env.strict() && !d.next.Departments.Has(op.DepartmentID) {
		return skipped(domain.StatusMissingReference, op.DepartmentID)
	}

	user.FirstName = op.FirstName
	user.LastName = op.LastName
	user.DepartmentID = op.DepartmentID
	user.Touch(d.now)
	d.users().Put(op.ID, user)

	if moving {
		d.usersByDepartment().Move(op.ID, from, op.DepartmentID)
		d.adjustDepartment(from, -1, user.TotalSpending.Neg())
		d.adjustDepartment(op.DepartmentID, 1, user.TotalSpending)
	}
	return applied(op.ID)
}

// deleteUser removes the user and every expense it owns. Aggregates of the
// owning department are adjusted once using the user's running total.
func (d *draft) deleteUser(op DeleteUser) domain.Result {
	user, ok := d.next.Users.Get(op.ID)
	if !ok {
		return skipped(domain.StatusNotFound, op.ID)
	}
	if owned := d.next.ExpensesByUser.Members(op.ID); len(owned) > 0 {
		d.expenses().DeleteMany(owned)
	}
	d.adjustDepartment(user.DepartmentID, -1, user.TotalSpending.Neg())
	d.usersByDepartment().Remove(user.DepartmentID, op.ID)
	d.expensesByUser().Drop(op.ID)
	d.users().Delete(op.ID)
	return applied(op.ID)
}
