package domain

import "time"

// AuditFields holds the creation and last-modification timestamps shared by all entities.
// CreatedAt equals UpdatedAt when an entity is first created.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAuditFields returns audit fields stamped with the same instant for creation and update.
func NewAuditFields(now time.Time) AuditFields {
	return AuditFields{CreatedAt: now, UpdatedAt: now}
}

// Touch bumps UpdatedAt.
func (a *AuditFields) Touch(now time.Time) {
	a.UpdatedAt = now
}
