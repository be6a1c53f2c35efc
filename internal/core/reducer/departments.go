package reducer

import (
	"strings"

	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (d *draft) createDepartment(op CreateDepartment) domain.Result {
	if other, taken := d.departmentNamed(op.Name, ""); taken {
		return skipped(domain.StatusDuplicate, other)
	}
	id := d.newID()
	d.departments().Put(id, domain.Department{
		DepartmentID:  id,
		Name:          op.Name,
		TotalSpending: decimal.Zero,
		AuditFields:   domain.NewAuditFields(d.now),
	})
	d.usersByDepartment().Ensure(id)
	return applied(id)
}

func (d *draft) updateDepartment(op UpdateDepartment) domain.Result {
	dept, ok := d.next.Departments.Get(op.ID)
	if !ok {
		return skipped(domain.StatusNotFound, op.ID)
	}
	if other, taken := d.departmentNamed(op.Name, op.ID); taken {
		return skipped(domain.StatusDuplicate, other)
	}
	dept.Name = op.Name
	dept.Touch(d.now)
	d.departments().Put(op.ID, dept)
	return applied(op.ID)
}

// deleteDepartment removes a department, first moving its users to
// op.ReassignTo when one is given. Under the strict policy a department that
// still has users can only be deleted into an existing target.
func (d *draft) deleteDepartment(op DeleteDepartment) domain.Result {
	if !d.next.Departments.Has(op.ID) {
		return skipped(domain.StatusNotFound, op.ID)
	}
	if op.ReassignTo == op.ID {
		return skipped(domain.StatusInvalidTarget, op.ID)
	}

	members := d.next.UsersByDepartment.Members(op.ID)
	if op.ReassignTo == "" {
		if len(members) > 0 && d.env.strict() {
			return skipped(domain.StatusHasMembers, op.ID)
		}
	} else {
		if d.env.strict() && !d.next.Departments.Has(op.ReassignTo) {
			return skipped(domain.StatusMissingReference, op.ReassignTo)
		}
		d.reassignUsers(members, op.ID, op.ReassignTo)
	}

	d.departments().Delete(op.ID)
	d.usersByDepartment().Drop(op.ID)
	return applied(op.ID)
}

func (d *draft) reassignUsers(members []string, from, to string) {
	if len(members) == 0 {
		return
	}
	moved, spending := 0, decimal.Zero
	for _, userID := range members {
		user, ok := d.next.Users.Get(userID)
		if !ok {
			continue
		}
		user.DepartmentID = to
		user.Touch(d.now)
		d.users().Put(userID, user)
		moved++
		spending = spending.Add(user.TotalSpending)
	}
	d.usersByDepartment().Merge(from, to)
	d.adjustDepartment(to, moved, spending)
}

// departmentNamed finds a department other than except whose name equals
// name after trimming, ignoring case.
func (d *draft) departmentNamed(name, except string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	found := ""
	d.next.Departments.Each(func(id string, dept domain.Department) bool {
		if id != except && strings.ToLower(strings.TrimSpace(dept.Name)) == key {
			found = id
			return false
		}
		return true
	})
	return found, found != ""
}
