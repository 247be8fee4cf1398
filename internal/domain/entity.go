package domain

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Entity is implemented by every domain entity. EntityID returns the
// entity's identifier; uuid.Nil means the entity is transient (not yet
// assigned a persistent identity).
type Entity interface {
	EntityID() uuid.UUID
}

// Base is the identity capability embedded by every entity. The id is
// assigned at construction via NewBase; loading code may set it directly
// when rehydrating a persisted entity.
type Base struct {
	ID uuid.UUID
}

// NewBase returns an identity capability with a freshly generated id.
func NewBase() Base {
	return Base{ID: uuid.New()}
}

// BaseWithID returns an identity capability with the given id. A nil id
// yields a transient entity.
func BaseWithID(id uuid.UUID) Base {
	return Base{ID: id}
}

// EntityID implements Entity.
func (b *Base) EntityID() uuid.UUID {
	return b.ID
}

// IsTransient reports whether the entity has no assigned identity.
func (b *Base) IsTransient() bool {
	return b.ID == uuid.Nil
}

func (b *Base) String() string {
	if b.IsTransient() {
		return "[Id=transient]"
	}
	return fmt.Sprintf("[Id=%s]", b.ID)
}

// Equal reports identity-based equality between two entities: same concrete
// type and equal non-nil ids. A transient entity is equal only to itself
// (same instance). Entities of different concrete types are never equal,
// even with equal ids.
func Equal(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if a.EntityID() == uuid.Nil || b.EntityID() == uuid.Nil {
		return false
	}
	return a.EntityID() == b.EntityID()
}

// HashKey returns a map key for the entity: type-qualified id once assigned,
// instance-based while transient. Callers must not assign an id after using
// a transient entity's key in a hash-based container.
func HashKey(e Entity) string {
	if e.EntityID() == uuid.Nil {
		return fmt.Sprintf("%T@%p", e, e)
	}
	return fmt.Sprintf("%T:%s", e, e.EntityID())
}
