package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain/pagination"
)

// Request narrows a paged query to tasks. Nil/zero fields mean "no filter"
// for that dimension.
type Request struct {
	pagination.Request

	// TodoListID restricts results to one list.
	TodoListID *uuid.UUID

	// UserID restricts results to lists the user can see; interpretation is
	// up to the repository implementation.
	UserID *uuid.UUID

	// Status and Priority filter on the task fields of the same name.
	Status   *Status
	Priority *Priority

	// AssignedUserID restricts results to tasks assigned to one user.
	AssignedUserID *uuid.UUID

	// OverdueOnly keeps only tasks whose IsOverdue reports true.
	OverdueOnly bool

	// DueDateFrom/DueDateTo bound the due date (inclusive).
	DueDateFrom *time.Time
	DueDateTo   *time.Time
}

// CommentRequest narrows a paged query to the comments of one task,
// optionally filtered by author.
type CommentRequest struct {
	pagination.Request

	TodoTaskID uuid.UUID
	AuthorID   *uuid.UUID
}
