package list

import (
	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
)

// Share grants one user access to one todo list at a given permission
// level. Shares are created through the owning list's ShareWith operation.
type Share struct {
	domain.Base
	domain.Audit

	TodoListID uuid.UUID
	UserID     uuid.UUID

	permission Permission
}

// NewShare creates a share record. Most callers should go through
// TodoList.ShareWith, which also enforces the aggregate's uniqueness rules.
func NewShare(todoListID, userID uuid.UUID, permission Permission, createdBy uuid.UUID) (*Share, error) {
	if !permission.IsValid() {
		return nil, domain.NewValidationError("permission", "unknown permission value")
	}

	s := &Share{
		Base:       domain.NewBase(),
		TodoListID: todoListID,
		UserID:     userID,
		permission: permission,
	}
	s.SetCreatedInfo(createdBy)
	return s, nil
}

// Permission returns the granted access level.
func (s *Share) Permission() Permission {
	return s.permission
}

// ChangePermission replaces the access level and stamps the update.
func (s *Share) ChangePermission(permission Permission, updatedBy uuid.UUID) error {
	if !permission.IsValid() {
		return domain.NewValidationError("permission", "unknown permission value")
	}
	s.permission = permission
	s.SetUpdatedInfo(updatedBy)
	return nil
}

// IsReadOnly reports whether the grantee may only read the list.
func (s *Share) IsReadOnly() bool {
	return s.permission == PermissionReadOnly
}

// CanWrite reports whether the grantee may modify the list.
func (s *Share) CanWrite() bool {
	return s.permission == PermissionFullAccess
}
