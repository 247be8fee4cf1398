// Package task contains the task entity, its status state machine, and the
// comment entity owned by a task. A task always belongs to exactly one todo
// list; membership is managed by the owning list aggregate, not by the task.
package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/tag"
)

// Task is a single unit of work inside a todo list. All field changes go
// through named methods that validate input and stamp audit metadata;
// collections are reachable only through controlled add/remove operations.
type Task struct {
	domain.Base
	domain.Audit

	todoListID     uuid.UUID
	title          domain.Title
	description    domain.Description
	status         Status
	priority       Priority
	dueDate        *time.Time
	completedAt    *time.Time
	assignedUserID *uuid.UUID
	tags           []*tag.Tag
	comments       []*Comment
}

// New creates a task in the given list with status NotStarted. The title
// must be task-scoped (see domain.NewTaskTitle); a zero priority defaults to
// Medium. The list id is fixed for the task's lifetime.
func New(todoListID, createdBy uuid.UUID, title domain.Title, description domain.Description,
	priority Priority, dueDate *time.Time,
) (*Task, error) {
	if priority == 0 {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, domain.NewValidationError("priority", "unknown priority value")
	}

	t := &Task{
		Base:        domain.NewBase(),
		todoListID:  todoListID,
		title:       title,
		description: description,
		status:      StatusNotStarted,
		priority:    priority,
		dueDate:     cloneTime(dueDate),
	}
	t.SetCreatedInfo(createdBy)
	return t, nil
}

// TodoListID returns the id of the list this task belongs to.
func (t *Task) TodoListID() uuid.UUID {
	return t.todoListID
}

// Title returns the task title.
func (t *Task) Title() domain.Title {
	return t.title
}

// Description returns the task description; IsEmpty reports absence.
func (t *Task) Description() domain.Description {
	return t.description
}

// Status returns the current task status.
func (t *Task) Status() Status {
	return t.status
}

// Priority returns the current task priority.
func (t *Task) Priority() Priority {
	return t.priority
}

// DueDate returns a copy of the due date, or nil when none is set.
func (t *Task) DueDate() *time.Time {
	return cloneTime(t.dueDate)
}

// CompletedAt returns a copy of the completion time. It is set exactly when
// the task status is Completed.
func (t *Task) CompletedAt() *time.Time {
	return cloneTime(t.completedAt)
}

// AssignedUserID returns the assignee id, or nil when unassigned.
func (t *Task) AssignedUserID() *uuid.UUID {
	return cloneUUID(t.assignedUserID)
}

// UpdateTitle replaces the task title and stamps the update.
func (t *Task) UpdateTitle(title domain.Title, updatedBy uuid.UUID) {
	t.title = title
	t.SetUpdatedInfo(updatedBy)
}

// UpdateDescription replaces the task description and stamps the update.
func (t *Task) UpdateDescription(description domain.Description, updatedBy uuid.UUID) {
	t.description = description
	t.SetUpdatedInfo(updatedBy)
}

// ChangeStatus moves the task to the given status if the transition table
// permits it. Entering Completed stamps CompletedAt; leaving Completed
// clears it. A rejected transition returns an *InvalidTransitionError
// carrying both statuses.
func (t *Task) ChangeStatus(status Status, updatedBy uuid.UUID) error {
	if !status.IsValid() {
		return domain.NewValidationError("status", "unknown status value")
	}
	if !t.status.CanTransitionTo(status) {
		return &InvalidTransitionError{From: t.status, To: status}
	}

	t.status = status
	if status == StatusCompleted {
		now := time.Now().UTC()
		t.completedAt = &now
	} else {
		t.completedAt = nil
	}

	t.SetUpdatedInfo(updatedBy)
	return nil
}

// SetPriority replaces the task priority and stamps the update.
func (t *Task) SetPriority(priority Priority, updatedBy uuid.UUID) error {
	if !priority.IsValid() {
		return domain.NewValidationError("priority", "unknown priority value")
	}
	t.priority = priority
	t.SetUpdatedInfo(updatedBy)
	return nil
}

// SetDueDate sets the due date and stamps the update.
func (t *Task) SetDueDate(dueDate time.Time, updatedBy uuid.UUID) {
	d := dueDate
	t.dueDate = &d
	t.SetUpdatedInfo(updatedBy)
}

// ClearDueDate removes the due date and stamps the update.
func (t *Task) ClearDueDate(updatedBy uuid.UUID) {
	t.dueDate = nil
	t.SetUpdatedInfo(updatedBy)
}

// AssignTo assigns the task to a user, or unassigns it when assignee is
// nil, and stamps the update.
func (t *Task) AssignTo(assignee *uuid.UUID, updatedBy uuid.UUID) {
	t.assignedUserID = cloneUUID(assignee)
	t.SetUpdatedInfo(updatedBy)
}

// Tags returns a copy of the task's tag associations.
func (t *Task) Tags() []*tag.Tag {
	out := make([]*tag.Tag, len(t.tags))
	copy(out, t.tags)
	return out
}

// AddTag associates a tag with the task. Adding a nil tag fails; adding a
// tag that is already associated is a no-op.
func (t *Task) AddTag(tg *tag.Tag, updatedBy uuid.UUID) error {
	if tg == nil {
		return domain.NewValidationError("tag", "must not be nil")
	}
	for _, existing := range t.tags {
		if existing.ID == tg.ID {
			return nil
		}
	}
	t.tags = append(t.tags, tg)
	t.SetUpdatedInfo(updatedBy)
	return nil
}

// RemoveTag drops the association with the given tag id, reporting whether
// it was present.
func (t *Task) RemoveTag(tagID uuid.UUID, updatedBy uuid.UUID) bool {
	for i, existing := range t.tags {
		if existing.ID == tagID {
			t.tags = append(t.tags[:i], t.tags[i+1:]...)
			t.SetUpdatedInfo(updatedBy)
			return true
		}
	}
	return false
}

// Comments returns a copy of the task's comments in insertion order.
func (t *Task) Comments() []*Comment {
	out := make([]*Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// AddComment attaches a comment to the task. The comment must reference
// this task's id.
func (t *Task) AddComment(c *Comment) error {
	if c == nil {
		return domain.NewValidationError("comment", "must not be nil")
	}
	if c.TodoTaskID != t.ID {
		return domain.NewValidationError("comment", "belongs to a different task")
	}
	t.comments = append(t.comments, c)
	return nil
}

// RemoveComment drops the comment with the given id, reporting whether it
// was present.
func (t *Task) RemoveComment(commentID uuid.UUID) bool {
	for i, c := range t.comments {
		if c.ID == commentID {
			t.comments = append(t.comments[:i], t.comments[i+1:]...)
			return true
		}
	}
	return false
}

// IsCompleted reports whether the task status is Completed.
func (t *Task) IsCompleted() bool {
	return t.status == StatusCompleted
}

// IsOverdue reports whether the task has a due date in the past and is
// completed. Completion is part of the condition on purpose; see the
// project design notes before changing it.
func (t *Task) IsOverdue() bool {
	return t.dueDate != nil && t.dueDate.Before(time.Now().UTC()) && t.IsCompleted()
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
