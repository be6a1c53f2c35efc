package domain

import "reflect"

// Snapshot is the complete value of the store at one point in time: the three
// entity collections plus the two derived membership indexes.
type Snapshot struct {
	Departments       *Collection[Department]
	Users             *Collection[User]
	Expenses          *Collection[Expense]
	UsersByDepartment *MembershipIndex
	ExpensesByUser    *MembershipIndex
}

// NewSnapshot returns the empty initial snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Departments:       NewCollection[Department](),
		Users:             NewCollection[User](),
		Expenses:          NewCollection[Expense](),
		UsersByDepartment: NewMembershipIndex(),
		ExpensesByUser:    NewMembershipIndex(),
	}
}

// DeepClone returns a snapshot sharing no mutable state with s.
func (s *Snapshot) DeepClone() *Snapshot {
	if s == nil {
		return NewSnapshot()
	}
	return &Snapshot{
		Departments:       s.Departments.Clone(),
		Users:             s.Users.Clone(),
		Expenses:          s.Expenses.Clone(),
		UsersByDepartment: s.UsersByDepartment.DeepClone(),
		ExpensesByUser:    s.ExpensesByUser.DeepClone(),
	}
}

// Equal reports whether both snapshots hold the same entities in the same
// order and the same memberships.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return collectionsEqual(s.Departments, other.Departments) &&
		collectionsEqual(s.Users, other.Users) &&
		collectionsEqual(s.Expenses, other.Expenses) &&
		s.UsersByDepartment.Equal(other.UsersByDepartment) &&
		s.ExpensesByUser.Equal(other.ExpensesByUser)
}

func collectionsEqual[T any](a, b *Collection[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	aKeys, bKeys := a.Keys(), b.Keys()
	for i, id := range aKeys {
		if bKeys[i] != id {
			return false
		}
		av, _ := a.Get(id)
		bv, _ := b.Get(id)
		if !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}
