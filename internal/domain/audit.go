package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit is the audit-metadata capability embedded by audit-tracked entities.
// UpdatedAt and UpdatedBy stay nil until the first mutation; an entity is
// "modified" exactly when UpdatedAt is set.
type Audit struct {
	CreatedAt time.Time
	CreatedBy uuid.UUID
	UpdatedAt *time.Time
	UpdatedBy *uuid.UUID
}

// SetCreatedInfo stamps the creation time (UTC now) and the acting user.
// Constructors call this exactly once.
func (a *Audit) SetCreatedInfo(actorID uuid.UUID) {
	a.CreatedAt = time.Now().UTC()
	a.CreatedBy = actorID
}

// SetUpdatedInfo stamps the update time (UTC now) and the acting user.
// Every mutator calls this after applying its change.
func (a *Audit) SetUpdatedInfo(actorID uuid.UUID) {
	now := time.Now().UTC()
	a.UpdatedAt = &now
	actor := actorID
	a.UpdatedBy = &actor
}

// IsModified reports whether the entity has been mutated since creation.
func (a *Audit) IsModified() bool {
	return a.UpdatedAt != nil
}
