// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/domain/tag"
	"github.com/avoronkov/todoapp/internal/domain/task"
	"github.com/avoronkov/todoapp/internal/ports"
)

// ListResponse represents a single todo list in HTTP responses.
type ListResponse struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Tasks       []TaskResponse  `json:"tasks,omitempty"`
	Shares      []ShareResponse `json:"shares,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   *string         `json:"updated_at,omitempty"`
}

// ToListResponse converts a domain TodoList to an HTTP response DTO.
// Tasks and shares are included only when the aggregate has them populated.
func ToListResponse(l *list.TodoList) ListResponse {
	resp := ListResponse{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		Title:       l.Title().String(),
		Description: l.Description().String(),
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   formatOptional(l.UpdatedAt),
	}

	if tasks := l.Tasks(); len(tasks) > 0 {
		resp.Tasks = make([]TaskResponse, len(tasks))
		for i, t := range tasks {
			resp.Tasks[i] = ToTaskResponse(t)
		}
	}
	if shares := l.Shares(); len(shares) > 0 {
		resp.Shares = make([]ShareResponse, len(shares))
		for i, s := range shares {
			resp.Shares[i] = ToShareResponse(s)
		}
	}

	return resp
}

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID             uuid.UUID         `json:"id"`
	TodoListID     uuid.UUID         `json:"todo_list_id"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	Status         string            `json:"status"`
	Priority       string            `json:"priority"`
	DueDate        *string           `json:"due_date,omitempty"`
	CompletedAt    *string           `json:"completed_at,omitempty"`
	AssignedUserID *uuid.UUID        `json:"assigned_user_id,omitempty"`
	Overdue        bool              `json:"overdue"`
	Tags           []TagResponse     `json:"tags,omitempty"`
	Comments       []CommentResponse `json:"comments,omitempty"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      *string           `json:"updated_at,omitempty"`
}

// ToTaskResponse converts a domain Task to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	resp := TaskResponse{
		ID:             t.ID,
		TodoListID:     t.TodoListID(),
		Title:          t.Title().String(),
		Description:    t.Description().String(),
		Status:         t.Status().String(),
		Priority:       t.Priority().String(),
		DueDate:        formatOptional(t.DueDate()),
		CompletedAt:    formatOptional(t.CompletedAt()),
		AssignedUserID: t.AssignedUserID(),
		Overdue:        t.IsOverdue(),
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      formatOptional(t.UpdatedAt),
	}

	if tags := t.Tags(); len(tags) > 0 {
		resp.Tags = make([]TagResponse, len(tags))
		for i, tg := range tags {
			resp.Tags[i] = ToTagResponse(tg)
		}
	}
	if comments := t.Comments(); len(comments) > 0 {
		resp.Comments = make([]CommentResponse, len(comments))
		for i, c := range comments {
			resp.Comments[i] = ToCommentResponse(c)
		}
	}

	return resp
}

// CommentResponse represents a single task comment in HTTP responses.
type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	TodoTaskID uuid.UUID `json:"todo_task_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	Content    string    `json:"content"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  *string   `json:"updated_at,omitempty"`
}

// ToCommentResponse converts a domain Comment to an HTTP response DTO.
func ToCommentResponse(c *task.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		TodoTaskID: c.TodoTaskID,
		AuthorID:   c.AuthorID,
		Content:    c.Content(),
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  formatOptional(c.UpdatedAt),
	}
}

// TagResponse represents a single tag in HTTP responses.
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt *string   `json:"updated_at,omitempty"`
}

// ToTagResponse converts a domain Tag to an HTTP response DTO.
func ToTagResponse(t *tag.Tag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Name:      t.Name(),
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: formatOptional(t.UpdatedAt),
	}
}

// ShareResponse represents a single list share in HTTP responses.
type ShareResponse struct {
	ID         uuid.UUID `json:"id"`
	TodoListID uuid.UUID `json:"todo_list_id"`
	UserID     uuid.UUID `json:"user_id"`
	Permission string    `json:"permission"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  *string   `json:"updated_at,omitempty"`
}

// ToShareResponse converts a domain Share to an HTTP response DTO.
func ToShareResponse(s *list.Share) ShareResponse {
	return ShareResponse{
		ID:         s.ID,
		TodoListID: s.TodoListID,
		UserID:     s.UserID,
		Permission: s.Permission().String(),
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  formatOptional(s.UpdatedAt),
	}
}

// PagedResponse is the envelope for paginated collections.
type PagedResponse[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ToPagedResponse converts a pagination result, mapping each item through
// convert.
func ToPagedResponse[E, T any](res *pagination.Result[E], convert func(E) T) PagedResponse[T] {
	src := res.Items()
	items := make([]T, len(src))
	for i, e := range src {
		items[i] = convert(e)
	}
	return PagedResponse[T]{
		Items:      items,
		Page:       res.PageNumber(),
		PageSize:   res.PageSize(),
		TotalCount: res.TotalCount(),
		TotalPages: res.TotalPages(),
		HasNext:    res.HasNextPage(),
		HasPrev:    res.HasPreviousPage(),
	}
}

// BulkStatusResponse represents the result of a bulk status change. It
// includes both successful updates and per-item errors.
type BulkStatusResponse struct {
	Updated   []TaskResponse        `json:"updated"`
	Errors    []BulkStatusErrorItem `json:"errors"`
	Total     int                   `json:"total"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
}

// BulkStatusErrorItem represents a single failed change within a bulk
// operation.
type BulkStatusErrorItem struct {
	TaskID  uuid.UUID `json:"task_id"`
	Message string    `json:"message"`
}

// ToBulkStatusResponse converts a ports.BulkStatusResult to an HTTP
// response DTO.
func ToBulkStatusResponse(result *ports.BulkStatusResult) BulkStatusResponse {
	updated := make([]TaskResponse, len(result.Updated))
	for i, t := range result.Updated {
		updated[i] = ToTaskResponse(t)
	}

	errs := make([]BulkStatusErrorItem, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = BulkStatusErrorItem{
			TaskID:  e.TaskID,
			Message: e.Err.Error(),
		}
	}

	total := len(result.Updated) + len(result.Errors)
	return BulkStatusResponse{
		Updated:   updated,
		Errors:    errs,
		Total:     total,
		Succeeded: len(result.Updated),
		Failed:    len(result.Errors),
	}
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
