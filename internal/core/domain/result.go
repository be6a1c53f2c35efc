package domain

// ResultStatus discriminates an applied operation from the ways it can be skipped.
type ResultStatus string

const (
	StatusApplied ResultStatus = "applied"
	// StatusNotFound: the entity the operation targets does not exist.
	StatusNotFound ResultStatus = "not_found"
	// StatusMissingReference: a referenced parent (department, user, reassignment target) does not exist.
	StatusMissingReference ResultStatus = "missing_reference"
	// StatusHasMembers: a department still has users and no reassignment target was given.
	StatusHasMembers ResultStatus = "has_members"
	// StatusInvalidTarget: a department cannot be reassigned into itself.
	StatusInvalidTarget ResultStatus = "invalid_target"
	// StatusDuplicate: another department already uses the name, ignoring case.
	StatusDuplicate ResultStatus = "duplicate"
)

// Result reports what a store operation did. Skipped operations leave the
// snapshot untouched.
type Result struct {
	Op       string       `json:"op"`
	Status   ResultStatus `json:"status"`
	EntityID string       `json:"entityID,omitempty"`
}

// Applied reports whether the operation changed the store.
func (r Result) Applied() bool {
	return r.Status == StatusApplied
}
