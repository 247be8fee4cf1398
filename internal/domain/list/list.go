// Package list contains the TodoList aggregate root and its share entity.
// The list is the sole entry point for task membership and shared access;
// its mutators enforce the aggregate's invariants and buffer domain events
// for publication after a successful save.
package list

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/task"
)

// TodoList is the aggregate root of the task-tracking domain: it owns its
// tasks and its shares, and accumulates domain events describing every
// significant change.
type TodoList struct {
	domain.Base
	domain.Audit
	domain.Events

	OwnerID uuid.UUID

	title       domain.Title
	description domain.Description
	tasks       []*task.Task
	shares      []*Share
}

// New creates a todo list owned by the given user, stamping the owner as
// creator and buffering a CreatedEvent.
func New(ownerID uuid.UUID, title domain.Title, description domain.Description) *TodoList {
	l := &TodoList{
		Base:        domain.NewBase(),
		OwnerID:     ownerID,
		title:       title,
		description: description,
	}
	l.SetCreatedInfo(ownerID)
	l.record(CreatedEvent{
		EventBase:  domain.NewEventBase(),
		TodoListID: l.ID,
		OwnerID:    ownerID,
		Title:      title.Value(),
	})
	return l
}

// Title returns the list title.
func (l *TodoList) Title() domain.Title {
	return l.title
}

// Description returns the list description; IsEmpty reports absence.
func (l *TodoList) Description() domain.Description {
	return l.description
}

// UpdateTitle replaces the list title and stamps the update.
func (l *TodoList) UpdateTitle(title domain.Title, updatedBy uuid.UUID) {
	old := l.title.Value()
	l.title = title
	l.SetUpdatedInfo(updatedBy)
	l.record(RetitledEvent{
		EventBase:  domain.NewEventBase(),
		TodoListID: l.ID,
		OldTitle:   old,
		NewTitle:   title.Value(),
	})
}

// UpdateDescription replaces the list description and stamps the update.
func (l *TodoList) UpdateDescription(description domain.Description, updatedBy uuid.UUID) {
	l.description = description
	l.SetUpdatedInfo(updatedBy)
	l.record(DescriptionChangedEvent{
		EventBase:  domain.NewEventBase(),
		TodoListID: l.ID,
	})
}

// Tasks returns a copy of the list's tasks in insertion order.
func (l *TodoList) Tasks() []*task.Task {
	out := make([]*task.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// FindTask returns the task with the given id, or nil when the list does
// not contain it.
func (l *TodoList) FindTask(taskID uuid.UUID) *task.Task {
	for _, t := range l.tasks {
		if t.ID == taskID {
			return t
		}
	}
	return nil
}

// AddTask places a task into the list. The task must have been constructed
// for this list's id; adding a task that is already present fails.
func (l *TodoList) AddTask(t *task.Task) error {
	if t == nil {
		return domain.NewValidationError("task", "must not be nil")
	}
	if t.TodoListID() != l.ID {
		return domain.NewValidationError("task", "belongs to a different list")
	}
	if l.FindTask(t.ID) != nil {
		return &domain.ConflictError{
			Message: fmt.Sprintf("task %q is already in list %q", t.ID, l.ID),
		}
	}

	l.tasks = append(l.tasks, t)
	l.record(TaskAddedEvent{
		EventBase:  domain.NewEventBase(),
		TodoListID: l.ID,
		TaskID:     t.ID,
		TaskTitle:  t.Title().Value(),
	})
	return nil
}

// RemoveTask drops the task with the given id from the list, reporting
// whether it was present.
func (l *TodoList) RemoveTask(taskID uuid.UUID) bool {
	for i, t := range l.tasks {
		if t.ID == taskID {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			l.record(TaskRemovedEvent{
				EventBase:  domain.NewEventBase(),
				TodoListID: l.ID,
				TaskID:     taskID,
			})
			return true
		}
	}
	return false
}

// Shares returns a copy of the list's share records.
func (l *TodoList) Shares() []*Share {
	out := make([]*Share, len(l.shares))
	copy(out, l.shares)
	return out
}

// FindShare returns the share granted to the given user, or nil.
func (l *TodoList) FindShare(userID uuid.UUID) *Share {
	for _, s := range l.shares {
		if s.UserID == userID {
			return s
		}
	}
	return nil
}

// ShareWith grants a user access to the list. Sharing with the owner or
// with a user who already holds a share fails.
func (l *TodoList) ShareWith(userID uuid.UUID, permission Permission, actorID uuid.UUID) (*Share, error) {
	if userID == l.OwnerID {
		return nil, &domain.ConflictError{
			Message: fmt.Sprintf("list %q already belongs to user %q", l.ID, userID),
		}
	}
	if l.FindShare(userID) != nil {
		return nil, &domain.ConflictError{
			Message: fmt.Sprintf("list %q is already shared with user %q", l.ID, userID),
		}
	}

	share, err := NewShare(l.ID, userID, permission, actorID)
	if err != nil {
		return nil, err
	}

	l.shares = append(l.shares, share)
	l.SetUpdatedInfo(actorID)
	l.record(SharedEvent{
		EventBase:  domain.NewEventBase(),
		TodoListID: l.ID,
		UserID:     userID,
		Permission: permission,
	})
	return share, nil
}

// ChangeSharePermission replaces the access level of an existing grant.
func (l *TodoList) ChangeSharePermission(userID uuid.UUID, permission Permission, actorID uuid.UUID) error {
	share := l.FindShare(userID)
	if share == nil {
		return domain.NewNotFoundError("TodoListShare", userID)
	}
	if err := share.ChangePermission(permission, actorID); err != nil {
		return err
	}

	l.SetUpdatedInfo(actorID)
	l.record(SharePermissionChangedEvent{
		EventBase:  domain.NewEventBase(),
		TodoListID: l.ID,
		UserID:     userID,
		Permission: permission,
	})
	return nil
}

// RevokeShare withdraws a user's access, reporting whether a grant existed.
func (l *TodoList) RevokeShare(userID uuid.UUID, actorID uuid.UUID) bool {
	for i, s := range l.shares {
		if s.UserID == userID {
			l.shares = append(l.shares[:i], l.shares[i+1:]...)
			l.SetUpdatedInfo(actorID)
			l.record(ShareRevokedEvent{
				EventBase:  domain.NewEventBase(),
				TodoListID: l.ID,
				UserID:     userID,
			})
			return true
		}
	}
	return false
}

// record buffers an event; events built here are never nil.
func (l *TodoList) record(e domain.Event) {
	_ = l.AddDomainEvent(e)
}
