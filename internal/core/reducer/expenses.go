package reducer

import (
	"github.com/kushalbajje/expense-management/internal/core/domain"
)

func (d *draft) createExpense(op CreateExpense) domain.Result {
	if d.env.strict() && !d.next.Users.Has(op.UserID) {
		return skipped(domain.StatusMissingReference, op.UserID)
	}
	id := d.newID()
	d.expenses().Put(id, domain.Expense{
		ExpenseID:   id,
		UserID:      op.UserID,
		Category:    op.Category,
		Description: op.Description,
		Cost:        op.Cost,
		AuditFields: domain.NewAuditFields(d.now),
	})
	d.expensesByUser().Add(op.UserID, id)
	d.adjustUser(op.UserID, op.Cost, 1)
	return applied(id)
}

// updateExpense requires the new owner to exist under every policy. A change
// of owner moves the full cost and count; otherwise only the cost delta is
// applied.
func (d *draft) updateExpense(op UpdateExpense) domain.Result {
	expense, ok := d.next.Expenses.Get(op.ID)
	if !ok {
		return skipped(domain.StatusNotFound, op.ID)
	}
	if !d.next.Users.Has(op.UserID) {
		return skipped(domain.StatusMissingReference, op.UserID)
	}

	oldOwner, oldCost := expense.UserID, expense.Cost
	expense.UserID = op.UserID
	expense.Category = op.Category
	expense.Description = op.Description
	expense.Cost = op.Cost
	expense.Touch(d.now)
	d.expenses().Put(op.ID, expense)

	if oldOwner != op.UserID {
		d.expensesByUser().Move(op.ID, oldOwner, op.UserID)
		d.adjustUser(oldOwner, oldCost.Neg(), -1)
		d.adjustUser(op.UserID, op.Cost, 1)
	} else {
		d.adjustUser(op.UserID, op.Cost.Sub(oldCost), 0)
	}
	return applied(op.ID)
}

func (d *draft) deleteExpense(op DeleteExpense) domain.Result {
	expense, ok := d.next.Expenses.Get(op.ID)
	if !ok {
		return skipped(domain.StatusNotFound, op.ID)
	}
	d.adjustUser(expense.UserID, expense.Cost.Neg(), -1)
	d.expensesByUser().Remove(expense.UserID, op.ID)
	d.expenses().Delete(op.ID)
	return applied(op.ID)
}
