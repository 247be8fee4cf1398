package list

import (
	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain/pagination"
)

// Request describes a paged query over todo lists visible to a user:
// lists they own plus lists shared with them, unless OwnedOnly is set.
type Request struct {
	pagination.Request

	UserID    uuid.UUID
	OwnedOnly bool
}

// ShareRequest describes a paged query over share records. Nil filters
// match everything.
type ShareRequest struct {
	pagination.Request

	TodoListID *uuid.UUID
	UserID     *uuid.UUID
	Permission *Permission
}
