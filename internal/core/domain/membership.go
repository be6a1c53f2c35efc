package domain

import (
	"maps"
	"slices"
)

// MembershipIndex maps a parent id to the set of child ids currently associated
// with it (department -> users, user -> expenses).
//
// Clone is shallow: child sets are shared with the source until first written,
// at which point the writer copies just that set.
type MembershipIndex struct {
	sets  map[string]map[string]struct{}
	owned map[string]bool
}

// NewMembershipIndex returns an empty index.
func NewMembershipIndex() *MembershipIndex {
	return &MembershipIndex{
		sets:  make(map[string]map[string]struct{}),
		owned: make(map[string]bool),
	}
}

// HasParent reports whether parent has an entry, even an empty one.
func (m *MembershipIndex) HasParent(parent string) bool {
	if m == nil {
		return false
	}
	_, ok := m.sets[parent]
	return ok
}

// Contains reports whether child is a member of parent.
func (m *MembershipIndex) Contains(parent, child string) bool {
	if m == nil {
		return false
	}
	_, ok := m.sets[parent][child]
	return ok
}

// Size returns the number of members of parent.
func (m *MembershipIndex) Size(parent string) int {
	if m == nil {
		return 0
	}
	return len(m.sets[parent])
}

// Members returns the members of parent sorted by id.
func (m *MembershipIndex) Members(parent string) []string {
	if m == nil {
		return nil
	}
	set := m.sets[parent]
	if len(set) == 0 {
		return []string{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Parents returns every parent id sorted.
func (m *MembershipIndex) Parents() []string {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.sets))
}

// Ensure creates an empty entry for parent if none exists.
func (m *MembershipIndex) Ensure(parent string) {
	if _, ok := m.sets[parent]; ok {
		return
	}
	m.sets[parent] = make(map[string]struct{})
	m.owned[parent] = true
}

// Add makes child a member of parent, creating the entry when absent.
func (m *MembershipIndex) Add(parent, child string) {
	m.writable(parent)[child] = struct{}{}
}

// Remove drops child from parent. The parent entry survives, possibly empty.
func (m *MembershipIndex) Remove(parent, child string) {
	if !m.Contains(parent, child) {
		return
	}
	delete(m.writable(parent), child)
}

// Move transfers child from one parent to another.
func (m *MembershipIndex) Move(child, from, to string) {
	if from == to {
		return
	}
	m.Remove(from, child)
	m.Add(to, child)
}

// Merge adds every member of from into to without touching from.
func (m *MembershipIndex) Merge(from, to string) {
	if from == to {
		return
	}
	target := m.writable(to)
	for child := range m.sets[from] {
		target[child] = struct{}{}
	}
}

// Drop removes the entry for parent entirely.
func (m *MembershipIndex) Drop(parent string) {
	delete(m.sets, parent)
	delete(m.owned, parent)
}

// Clone returns a copy that shares child sets with m until they are written.
func (m *MembershipIndex) Clone() *MembershipIndex {
	if m == nil {
		return NewMembershipIndex()
	}
	return &MembershipIndex{
		sets:  maps.Clone(m.sets),
		owned: make(map[string]bool),
	}
}

// DeepClone returns a copy that shares nothing with m.
func (m *MembershipIndex) DeepClone() *MembershipIndex {
	out := NewMembershipIndex()
	if m == nil {
		return out
	}
	for parent, set := range m.sets {
		out.sets[parent] = maps.Clone(set)
		out.owned[parent] = true
	}
	return out
}

// Equal reports whether both indexes hold exactly the same memberships.
func (m *MembershipIndex) Equal(other *MembershipIndex) bool {
	if m.len() != other.len() {
		return false
	}
	for parent, set := range m.sets {
		otherSet, ok := other.sets[parent]
		if !ok || !maps.Equal(set, otherSet) {
			return false
		}
	}
	return true
}

func (m *MembershipIndex) len() int {
	if m == nil {
		return 0
	}
	return len(m.sets)
}

func (m *MembershipIndex) writable(parent string) map[string]struct{} {
	set, ok := m.sets[parent]
	switch {
	case !ok:
		set = make(map[string]struct{})
	case !m.owned[parent]:
		set = maps.Clone(set)
		if set == nil {
			set = make(map[string]struct{})
		}
	default:
		return set
	}
	m.sets[parent] = set
	m.owned[parent] = true
	return set
}
