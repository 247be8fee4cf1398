package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/domain/tag"
	"github.com/avoronkov/todoapp/internal/domain/task"
)

// ListService defines the service port for todo-list aggregate operations.
// Implemented by the application layer; called by inbound adapters (handlers).
// Every operation takes the acting user's id; write operations require
// ownership or a full-access share, read operations any share.
type ListService interface {
	// CreateList creates a list owned by the acting user.
	// Returns domain.ErrValidation if the title or description is invalid.
	CreateList(ctx context.Context, actorID uuid.UUID, title, description string) (*list.TodoList, error)

	// GetList returns a list with its tasks populated.
	// Returns domain.ErrNotFound if the list does not exist and
	// domain.ErrForbidden if the actor has no access to it.
	GetList(ctx context.Context, actorID, listID uuid.UUID) (*list.TodoList, error)

	// Lists returns one page of lists visible to the acting user: lists
	// they own plus lists shared with them, unless OwnedOnly is set.
	Lists(ctx context.Context, actorID uuid.UUID, req list.Request) (*pagination.Result[*list.TodoList], error)

	// UpdateList applies the non-nil fields of the update to the list.
	UpdateList(ctx context.Context, actorID, listID uuid.UUID, update ListUpdate) (*list.TodoList, error)

	// DeleteList removes the list with its tasks and shares.
	// Only the owner may delete a list.
	DeleteList(ctx context.Context, actorID, listID uuid.UUID) error

	// AddTask creates a task inside the list.
	AddTask(ctx context.Context, actorID, listID uuid.UUID, input NewTask) (*task.Task, error)

	// RemoveTask deletes a task from the list.
	// Returns domain.ErrNotFound if the list or task does not exist.
	RemoveTask(ctx context.Context, actorID, listID, taskID uuid.UUID) error

	// ShareList grants a user access to the list. Only the owner may share.
	// Returns domain.ErrConflict if the user already holds a share or owns
	// the list.
	ShareList(ctx context.Context, actorID, listID, userID uuid.UUID, permission list.Permission) (*list.Share, error)

	// ChangeSharePermission replaces the access level of an existing grant.
	ChangeSharePermission(ctx context.Context, actorID, listID, userID uuid.UUID, permission list.Permission) error

	// RevokeShare withdraws a user's access to the list.
	// Returns domain.ErrNotFound if no grant exists.
	RevokeShare(ctx context.Context, actorID, listID, userID uuid.UUID) error

	// Shares returns one page of the list's share records.
	Shares(ctx context.Context, actorID, listID uuid.UUID, req pagination.Request) (*pagination.Result[*list.Share], error)
}

// ListUpdate carries optional field replacements for a list. Nil fields are
// left unchanged.
type ListUpdate struct {
	Title       *string
	Description *string
}

// NewTask carries the input for creating a task. A zero Priority defaults
// to medium.
type NewTask struct {
	Title       string
	Description string
	Priority    task.Priority
	DueDate     *time.Time
}

// TaskService defines the service port for task operations.
// Implemented by the application layer; called by inbound adapters.
type TaskService interface {
	// GetTask returns a task with its comments and tags populated.
	// Returns domain.ErrNotFound if the task does not exist and
	// domain.ErrForbidden if the actor cannot read its list.
	GetTask(ctx context.Context, actorID, taskID uuid.UUID) (*task.Task, error)

	// Tasks returns one page of tasks matching the request's filters,
	// restricted to lists the acting user can read.
	Tasks(ctx context.Context, actorID uuid.UUID, req task.Request) (*pagination.Result[*task.Task], error)

	// UpdateTask applies the non-nil fields of the update to the task.
	UpdateTask(ctx context.Context, actorID, taskID uuid.UUID, update TaskUpdate) (*task.Task, error)

	// ChangeStatus moves the task through its status state machine.
	// Returns domain.ErrInvalidTransition for a disallowed move.
	ChangeStatus(ctx context.Context, actorID, taskID uuid.UUID, status task.Status) (*task.Task, error)

	// SetPriority replaces the task's priority.
	SetPriority(ctx context.Context, actorID, taskID uuid.UUID, priority task.Priority) (*task.Task, error)

	// SetDueDate sets or replaces the task's due date.
	SetDueDate(ctx context.Context, actorID, taskID uuid.UUID, dueDate time.Time) (*task.Task, error)

	// ClearDueDate removes the task's due date.
	ClearDueDate(ctx context.Context, actorID, taskID uuid.UUID) (*task.Task, error)

	// Assign assigns the task to a user, or unassigns it when assignee is
	// nil.
	Assign(ctx context.Context, actorID, taskID uuid.UUID, assignee *uuid.UUID) (*task.Task, error)

	// AddComment attaches a comment authored by the acting user.
	AddComment(ctx context.Context, actorID, taskID uuid.UUID, content string) (*task.Comment, error)

	// UpdateComment replaces a comment's content. Only the author may edit.
	UpdateComment(ctx context.Context, actorID, commentID uuid.UUID, content string) (*task.Comment, error)

	// DeleteComment removes a comment. Only the author may delete.
	DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error

	// Comments returns one page of a task's comments.
	Comments(ctx context.Context, actorID uuid.UUID, req task.CommentRequest) (*pagination.Result[*task.Comment], error)

	// TagTask attaches one of the acting user's tags to the task.
	// Attaching a tag that is already present is a no-op.
	TagTask(ctx context.Context, actorID, taskID, tagID uuid.UUID) error

	// UntagTask detaches a tag from the task.
	// Returns domain.ErrNotFound if the tag is not attached.
	UntagTask(ctx context.Context, actorID, taskID, tagID uuid.UUID) error

	// BulkChangeStatus applies status changes to multiple tasks
	// concurrently. Uses partial success semantics: each change succeeds or
	// fails independently, and per-item failures are collected in
	// BulkStatusResult.Errors.
	BulkChangeStatus(ctx context.Context, actorID uuid.UUID, changes []StatusChange) (*BulkStatusResult, error)
}

// TaskUpdate carries optional field replacements for a task. Nil fields are
// left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
}

// StatusChange pairs a task id with its target status for bulk operations.
type StatusChange struct {
	TaskID uuid.UUID
	Status task.Status
}

// BulkStatusError records a single failed change within a bulk operation.
type BulkStatusError struct {
	TaskID uuid.UUID
	Err    error
}

// BulkStatusResult holds the outcomes of a bulk status change.
// Updated contains the tasks that moved; Errors contains per-item failures.
type BulkStatusResult struct {
	Updated []*task.Task
	Errors  []BulkStatusError
}

// TagService defines the service port for tag operations.
// Tags are private to their owner; every operation acts on the acting
// user's own tags.
type TagService interface {
	// CreateTag creates a tag owned by the acting user.
	// Returns domain.ErrConflict if the user already has a tag with that
	// name.
	CreateTag(ctx context.Context, actorID uuid.UUID, name string) (*tag.Tag, error)

	// Tags returns one page of the acting user's tags.
	Tags(ctx context.Context, actorID uuid.UUID, req tag.Request) (*pagination.Result[*tag.Tag], error)

	// RenameTag replaces a tag's name.
	// Returns domain.ErrConflict if the new name is already taken.
	RenameTag(ctx context.Context, actorID, tagID uuid.UUID, name string) (*tag.Tag, error)

	// DeleteTag removes a tag. The tag disappears from any tasks it was
	// attached to.
	DeleteTag(ctx context.Context, actorID, tagID uuid.UUID) error
}
