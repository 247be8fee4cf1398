// Package tag contains the user-owned tag entity used to categorize tasks
// across lists. Tags relate to tasks many-to-many; the task aggregate owns
// the association.
package tag

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
)

// NameMaxLength bounds a tag name.
const NameMaxLength = 50

// Tag is a short user-owned label. Names are trimmed and validated at
// construction and rename.
type Tag struct {
	domain.Base
	domain.Audit

	OwnerID uuid.UUID

	name string
}

// New creates a tag owned by the given user, stamping the owner as creator.
func New(ownerID uuid.UUID, name string) (*Tag, error) {
	normalized, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	t := &Tag{
		Base:    domain.NewBase(),
		OwnerID: ownerID,
		name:    normalized,
	}
	t.SetCreatedInfo(ownerID)
	return t, nil
}

// Name returns the tag name.
func (t *Tag) Name() string {
	return t.name
}

// Rename replaces the tag name and stamps the update.
func (t *Tag) Rename(name string, updatedBy uuid.UUID) error {
	normalized, err := normalizeName(name)
	if err != nil {
		return err
	}
	t.name = normalized
	t.SetUpdatedInfo(updatedBy)
	return nil
}

func normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", domain.NewValidationError("name", "must not be empty")
	}
	if len([]rune(trimmed)) > NameMaxLength {
		return "", domain.NewValidationError("name",
			fmt.Sprintf("must not exceed %d characters", NameMaxLength))
	}
	return trimmed, nil
}
