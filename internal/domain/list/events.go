package list

import (
	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
)

// Event names, used by publishers to route payloads.
const (
	EventListCreated            = "todo_list.created"
	EventListRetitled           = "todo_list.retitled"
	EventListDescriptionChanged = "todo_list.description_changed"
	EventTaskAdded              = "todo_list.task_added"
	EventTaskRemoved            = "todo_list.task_removed"
	EventListShared             = "todo_list.shared"
	EventSharePermissionChanged = "todo_list.share_permission_changed"
	EventShareRevoked           = "todo_list.share_revoked"
)

// CreatedEvent records the creation of a todo list.
type CreatedEvent struct {
	domain.EventBase
	TodoListID uuid.UUID
	OwnerID    uuid.UUID
	Title      string
}

// EventName implements domain.Event.
func (CreatedEvent) EventName() string { return EventListCreated }

// RetitledEvent records a title change.
type RetitledEvent struct {
	domain.EventBase
	TodoListID uuid.UUID
	OldTitle   string
	NewTitle   string
}

// EventName implements domain.Event.
func (RetitledEvent) EventName() string { return EventListRetitled }

// DescriptionChangedEvent records a description change.
type DescriptionChangedEvent struct {
	domain.EventBase
	TodoListID uuid.UUID
}

// EventName implements domain.Event.
func (DescriptionChangedEvent) EventName() string { return EventListDescriptionChanged }

// TaskAddedEvent records a task joining the list.
type TaskAddedEvent struct {
	domain.EventBase
	TodoListID uuid.UUID
	TaskID     uuid.UUID
	TaskTitle  string
}

// EventName implements domain.Event.
func (TaskAddedEvent) EventName() string { return EventTaskAdded }

// TaskRemovedEvent records a task leaving the list.
type TaskRemovedEvent struct {
	domain.EventBase
	TodoListID uuid.UUID
	TaskID     uuid.UUID
}

// EventName implements domain.Event.
func (TaskRemovedEvent) EventName() string { return EventTaskRemoved }

// SharedEvent records access being granted to a user.
type SharedEvent struct {
	domain.EventBase
	TodoListID uuid.UUID
	UserID     uuid.UUID
	Permission Permission
}

// EventName implements domain.Event.
func (SharedEvent) EventName() string { return EventListShared }

// SharePermissionChangedEvent records a change to an existing grant.
type SharePermissionChangedEvent struct {
	domain.EventBase
	TodoListID uuid.UUID
	UserID     uuid.UUID
	Permission Permission
}

// EventName implements domain.Event.
func (SharePermissionChangedEvent) EventName() string { return EventSharePermissionChanged }

// ShareRevokedEvent records access being withdrawn from a user.
type ShareRevokedEvent struct {
	domain.EventBase
	TodoListID uuid.UUID
	UserID     uuid.UUID
}

// EventName implements domain.Event.
func (ShareRevokedEvent) EventName() string { return EventShareRevoked }
