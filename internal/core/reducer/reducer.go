// Package reducer applies store operations to immutable snapshots.
//
// Reduce never mutates the snapshot it is given. Each operation builds a draft
// that clones only the collections it writes, so an applied operation returns a
// new snapshot that shares untouched collections with its predecessor and a
// skipped operation returns the predecessor itself.
package reducer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kushalbajje/expense-management/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReferencePolicy decides how operations treat foreign keys that do not resolve.
type ReferencePolicy string

const (
	// PolicyStrict rejects operations that would leave a dangling reference.
	PolicyStrict ReferencePolicy = "strict"
	// PolicyPermissive admits dangling references and skips the aggregate
	// bookkeeping that cannot be done, as bulk-seeded data may require.
	PolicyPermissive ReferencePolicy = "permissive"
)

// ParseReferencePolicy maps a config string to a policy.
func ParseReferencePolicy(s string) (ReferencePolicy, error) {
	switch ReferencePolicy(s) {
	case PolicyStrict, PolicyPermissive:
		return ReferencePolicy(s), nil
	case "":
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown reference policy %q", s)
	}
}

// Env supplies the non-deterministic inputs of the reducer.
type Env struct {
	NewID  func() string
	Now    func() time.Time
	Policy ReferencePolicy
}

// DefaultEnv uses random UUIDs, the UTC wall clock and the strict policy.
func DefaultEnv() Env {
	return Env{
		NewID:  uuid.NewString,
		Now:    func() time.Time { return time.Now().UTC() },
		Policy: PolicyStrict,
	}
}

func (e Env) strict() bool {
	return e.Policy != PolicyPermissive
}

// Reduce applies op to prev and returns the next snapshot with a Result.
// When the result is not applied the returned snapshot is prev.
func Reduce(prev *domain.Snapshot, op Operation, env Env) (*domain.Snapshot, domain.Result) {
	if prev == nil {
		prev = domain.NewSnapshot()
	}
	if env.NewID == nil || env.Now == nil {
		defaults := DefaultEnv()
		if env.NewID == nil {
			env.NewID = defaults.NewID
		}
		if env.Now == nil {
			env.Now = defaults.Now
		}
	}

	d := newDraft(prev, env)
	var res domain.Result
	switch o := op.(type) {
	case CreateDepartment:
		res = d.createDepartment(o)
	case UpdateDepartment:
		res = d.updateDepartment(o)
	case DeleteDepartment:
		res = d.deleteDepartment(o)
	case CreateUser:
		res = d.createUser(o)
	case UpdateUser:
		res = d.updateUser(o)
	case DeleteUser:
		res = d.deleteUser(o)
	case CreateExpense:
		res = d.createExpense(o)
	case UpdateExpense:
		res = d.updateExpense(o)
	case DeleteExpense:
		res = d.deleteExpense(o)
	case LoadBulkData:
		return o.Snapshot.DeepClone(), domain.Result{Op: string(o.Kind()), Status: domain.StatusApplied}
	case Reset:
		return domain.NewSnapshot(), domain.Result{Op: string(o.Kind()), Status: domain.StatusApplied}
	default:
		panic(fmt.Sprintf("reducer: unhandled operation %T", op))
	}

	res.Op = string(op.Kind())
	if !res.Applied() {
		return prev, res
	}
	return d.commit(), res
}

// draft is the working copy of one operation. Collections are cloned the
// first time they are requested for writing.
type draft struct {
	prev *domain.Snapshot
	next domain.Snapshot
	env  Env
	now  time.Time

	departmentsOwned, usersOwned, expensesOwned bool
	usersByDeptOwned, expensesByUserOwned        bool
}

func newDraft(prev *domain.Snapshot, env Env) *draft {
	return &draft{prev: prev, next: *prev, env: env, now: env.Now()}
}

func (d *draft) commit() *domain.Snapshot {
	next := d.next
	return &next
}

func (d *draft) departments() *domain.Collection[domain.Department] {
	if !d.departmentsOwned {
		d.next.Departments = d.prev.Departments.Clone()
		d.departmentsOwned = true
	}
	return d.next.Departments
}

func (d *draft) users() *domain.Collection[domain.User] {
	if !d.usersOwned {
		d.next.Users = d.prev.Users.Clone()
		d.usersOwned = true
	}
	return d.next.Users
}

func (d *draft) expenses() *domain.Collection[domain.Expense] {
	if !d.expensesOwned {
		d.next.Expenses = d.prev.Expenses.Clone()
		d.expensesOwned = true
	}
	return d.next.Expenses
}

func (d *draft) usersByDepartment() *domain.MembershipIndex {
	if !d.usersByDeptOwned {
		d.next.UsersByDepartment = d.prev.UsersByDepartment.Clone()
		d.usersByDeptOwned = true
	}
	return d.next.UsersByDepartment
}

func (d *draft) expensesByUser() *domain.MembershipIndex {
	if !d.expensesByUserOwned {
		d.next.ExpensesByUser = d.prev.ExpensesByUser.Clone()
		d.expensesByUserOwned = true
	}
	return d.next.ExpensesByUser
}

// newID returns an id not used by any entity currently present.
func (d *draft) newID() string {
	for {
		id := d.env.NewID()
		if !d.next.Departments.Has(id) && !d.next.Users.Has(id) && !d.next.Expenses.Has(id) {
			return id
		}
	}
}

// adjustDepartment applies count and spending deltas to a department if it
// exists and reports whether it did.
func (d *draft) adjustDepartment(id string, userDelta int, spendDelta decimal.Decimal) bool {
	dept, ok := d.next.Departments.Get(id)
	if !ok {
		return false
	}
	dept.UserCount += userDelta
	dept.TotalSpending = dept.TotalSpending.Add(spendDelta)
	dept.Touch(d.now)
	d.departments().Put(id, dept)
	return true
}

// adjustUser applies spending and count deltas to a user and propagates the
// spending delta to the user's department. It reports whether the user exists.
func (d *draft) adjustUser(id string, spendDelta decimal.Decimal, countDelta int) bool {
	user, ok := d.next.Users.Get(id)
	if !ok {
		return false
	}
	user.TotalSpending = user.TotalSpending.Add(spendDelta)
	user.ExpenseCount += countDelta
	user.Touch(d.now)
	d.users().Put(id, user)
	d.adjustDepartment(user.DepartmentID, 0, spendDelta)
	return true
}

func skipped(status domain.ResultStatus, id string) domain.Result {
	return domain.Result{Status: status, EntityID: id}
}

func applied(id string) domain.Result {
	return domain.Result{Status: domain.StatusApplied, EntityID: id}
}
