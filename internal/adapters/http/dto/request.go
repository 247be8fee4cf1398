package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/task"
)

const (
	msgRequired     = "is required"
	msgMustNotEmpty = "must not be empty"
)

// CreateListRequest represents the JSON body for creating a todo list.
type CreateListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateListRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateListRequest represents the JSON body for updating a todo list.
// All fields are optional; nil means "do not change this field".
type UpdateListRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate checks that any provided fields have valid values.
func (r *UpdateListRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		fields["title"] = msgMustNotEmpty
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateTaskRequest represents the JSON body for adding a task to a list.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks that required fields are present and optional fields have
// valid values. Returns a *domain.ValidationError if any checks fail.
func (r *CreateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = msgRequired
	}
	if r.Priority != "" {
		if _, ok := task.ParsePriority(r.Priority); !ok {
			fields["priority"] = fmt.Sprintf("invalid: %q", r.Priority)
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ParsedPriority returns the priority value, or zero when the field was
// omitted. Call Validate first.
func (r *CreateTaskRequest) ParsedPriority() task.Priority {
	if r.Priority == "" {
		return 0
	}
	p, _ := task.ParsePriority(r.Priority)
	return p
}

// UpdateTaskRequest represents the JSON body for updating a task.
// All fields are optional; nil means "do not change this field".
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate checks that any provided fields have valid values.
func (r *UpdateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		fields["title"] = msgMustNotEmpty
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ChangeStatusRequest represents the JSON body for a task status change.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks the status is one of the defined values.
func (r *ChangeStatusRequest) Validate() error {
	fields := make(map[string]string)

	if r.Status == "" {
		fields["status"] = msgRequired
	} else if !task.Status(r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// SetPriorityRequest represents the JSON body for changing a task priority.
type SetPriorityRequest struct {
	Priority string `json:"priority"`
}

// Validate checks the priority is one of the defined values.
func (r *SetPriorityRequest) Validate() error {
	fields := make(map[string]string)

	if r.Priority == "" {
		fields["priority"] = msgRequired
	} else if _, ok := task.ParsePriority(r.Priority); !ok {
		fields["priority"] = fmt.Sprintf("invalid: %q", r.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ParsedPriority returns the priority value. Call Validate first.
func (r *SetPriorityRequest) ParsedPriority() task.Priority {
	p, _ := task.ParsePriority(r.Priority)
	return p
}

// SetDueDateRequest represents the JSON body for setting a task due date.
type SetDueDateRequest struct {
	DueDate time.Time `json:"due_date"`
}

// Validate checks the due date is present.
func (r *SetDueDateRequest) Validate() error {
	if r.DueDate.IsZero() {
		return &domain.ValidationError{Fields: map[string]string{"due_date": msgRequired}}
	}
	return nil
}

// AssignTaskRequest represents the JSON body for assigning a task. A null
// user_id unassigns the task.
type AssignTaskRequest struct {
	UserID *uuid.UUID `json:"user_id"`
}

// CreateCommentRequest represents the JSON body for commenting on a task.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Validate checks the content is present.
func (r *CreateCommentRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return &domain.ValidationError{Fields: map[string]string{"content": msgRequired}}
	}
	return nil
}

// UpdateCommentRequest represents the JSON body for editing a comment.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// Validate checks the content is present.
func (r *UpdateCommentRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return &domain.ValidationError{Fields: map[string]string{"content": msgRequired}}
	}
	return nil
}

// CreateTagRequest represents the JSON body for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// Validate checks the name is present.
func (r *CreateTagRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &domain.ValidationError{Fields: map[string]string{"name": msgRequired}}
	}
	return nil
}

// RenameTagRequest represents the JSON body for renaming a tag.
type RenameTagRequest struct {
	Name string `json:"name"`
}

// Validate checks the name is present.
func (r *RenameTagRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &domain.ValidationError{Fields: map[string]string{"name": msgRequired}}
	}
	return nil
}

// ShareListRequest represents the JSON body for sharing a list with a user.
type ShareListRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	Permission string    `json:"permission"`
}

// Validate checks the grantee and permission are present and valid.
func (r *ShareListRequest) Validate() error {
	fields := make(map[string]string)

	if r.UserID == uuid.Nil {
		fields["user_id"] = msgRequired
	}
	if r.Permission == "" {
		fields["permission"] = msgRequired
	} else if !list.Permission(r.Permission).IsValid() {
		fields["permission"] = fmt.Sprintf("invalid: %q", r.Permission)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateShareRequest represents the JSON body for changing a share's
// permission.
type UpdateShareRequest struct {
	Permission string `json:"permission"`
}

// Validate checks the permission is present and valid.
func (r *UpdateShareRequest) Validate() error {
	fields := make(map[string]string)

	if r.Permission == "" {
		fields["permission"] = msgRequired
	} else if !list.Permission(r.Permission).IsValid() {
		fields["permission"] = fmt.Sprintf("invalid: %q", r.Permission)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// BulkStatusChange is one entry of a BulkStatusRequest.
type BulkStatusChange struct {
	TaskID uuid.UUID `json:"task_id"`
	Status string    `json:"status"`
}

// BulkStatusRequest represents the JSON body for changing the status of
// several tasks in one call.
type BulkStatusRequest struct {
	Changes []BulkStatusChange `json:"changes"`
}

// Validate checks every entry names a task and a defined status.
func (r *BulkStatusRequest) Validate() error {
	fields := make(map[string]string)

	if len(r.Changes) == 0 {
		fields["changes"] = msgRequired
	}
	for i, c := range r.Changes {
		if c.TaskID == uuid.Nil {
			fields[fmt.Sprintf("changes[%d].task_id", i)] = msgRequired
		}
		if !task.Status(c.Status).IsValid() {
			fields[fmt.Sprintf("changes[%d].status", i)] = fmt.Sprintf("invalid: %q", c.Status)
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
