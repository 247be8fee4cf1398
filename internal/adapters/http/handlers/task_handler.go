package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/adapters/http/dto"
	"github.com/avoronkov/todoapp/internal/adapters/http/middleware"
	"github.com/avoronkov/todoapp/internal/domain/task"
	"github.com/avoronkov/todoapp/internal/ports"
)

// TaskHandler handles HTTP requests for task queries, lifecycle changes,
// comments, and tag assignment.
type TaskHandler struct {
	svc ports.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given service port.
func NewTaskHandler(svc ports.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Tasks handles GET /api/v1/tasks.
func (h *TaskHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	req, err := parseTaskRequest(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	res, err := h.svc.Tasks(r.Context(), actorID, req)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPagedResponse(res, dto.ToTaskResponse))
}

// GetTask handles GET /api/v1/tasks/{taskId}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	t, err := h.svc.GetTask(r.Context(), actorID, taskID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(t))
}

// UpdateTask handles PATCH /api/v1/tasks/{taskId}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateTask(r.Context(), actorID, taskID, ports.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(updated))
}

// ChangeStatus handles PUT /api/v1/tasks/{taskId}/status.
func (h *TaskHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.ChangeStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.ChangeStatus(r.Context(), actorID, taskID, task.Status(req.Status))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(updated))
}

// SetPriority handles PUT /api/v1/tasks/{taskId}/priority.
func (h *TaskHandler) SetPriority(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.SetPriorityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.SetPriority(r.Context(), actorID, taskID, req.ParsedPriority())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(updated))
}

// SetDueDate handles PUT /api/v1/tasks/{taskId}/due-date.
func (h *TaskHandler) SetDueDate(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.SetDueDateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.SetDueDate(r.Context(), actorID, taskID, req.DueDate)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(updated))
}

// ClearDueDate handles DELETE /api/v1/tasks/{taskId}/due-date.
func (h *TaskHandler) ClearDueDate(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	updated, err := h.svc.ClearDueDate(r.Context(), actorID, taskID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(updated))
}

// Assign handles PUT /api/v1/tasks/{taskId}/assignee. A null user_id in the
// body unassigns the task.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.AssignTaskRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	updated, err := h.svc.Assign(r.Context(), actorID, taskID, req.UserID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(updated))
}

// Comments handles GET /api/v1/tasks/{taskId}/comments.
func (h *TaskHandler) Comments(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	req := task.CommentRequest{
		Request:    parsePageRequest(r),
		TodoTaskID: taskID,
	}
	if raw := r.URL.Query().Get("author_id"); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			dto.WriteErrorResponse(w, r, invalidQueryParam("author_id"))
			return
		}
		req.AuthorID = &authorID
	}

	res, err := h.svc.Comments(r.Context(), actorID, req)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPagedResponse(res, dto.ToCommentResponse))
}

// AddComment handles POST /api/v1/tasks/{taskId}/comments.
func (h *TaskHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.CreateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.AddComment(r.Context(), actorID, taskID, req.Content)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToCommentResponse(created))
}

// UpdateComment handles PATCH /api/v1/comments/{commentId}.
func (h *TaskHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	commentID, err := parseUUID(r, "commentId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateComment(r.Context(), actorID, commentID, req.Content)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCommentResponse(updated))
}

// DeleteComment handles DELETE /api/v1/comments/{commentId}.
func (h *TaskHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	commentID, err := parseUUID(r, "commentId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), actorID, commentID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TagTask handles PUT /api/v1/tasks/{taskId}/tags/{tagId}.
func (h *TaskHandler) TagTask(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	tagID, err := parseUUID(r, "tagId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.TagTask(r.Context(), actorID, taskID, tagID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UntagTask handles DELETE /api/v1/tasks/{taskId}/tags/{tagId}.
func (h *TaskHandler) UntagTask(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	tagID, err := parseUUID(r, "tagId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.UntagTask(r.Context(), actorID, taskID, tagID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BulkChangeStatus handles POST /api/v1/tasks/bulk/status.
func (h *TaskHandler) BulkChangeStatus(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	var req dto.BulkStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	changes := make([]ports.StatusChange, len(req.Changes))
	for i, c := range req.Changes {
		changes[i] = ports.StatusChange{
			TaskID: c.TaskID,
			Status: task.Status(c.Status),
		}
	}

	result, err := h.svc.BulkChangeStatus(r.Context(), actorID, changes)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBulkStatusResponse(result))
}

// parseTaskRequest binds the task query filters from the URL query string.
func parseTaskRequest(r *http.Request) (task.Request, error) {
	q := r.URL.Query()
	req := task.Request{
		Request:     parsePageRequest(r),
		OverdueOnly: q.Get("overdue") == "true",
	}

	if raw := q.Get("list_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return req, invalidQueryParam("list_id")
		}
		req.TodoListID = &id
	}
	if raw := q.Get("assigned_to"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return req, invalidQueryParam("assigned_to")
		}
		req.AssignedUserID = &id
	}
	if raw := q.Get("status"); raw != "" {
		status := task.Status(raw)
		if !status.IsValid() {
			return req, invalidQueryParam("status")
		}
		req.Status = &status
	}
	if raw := q.Get("priority"); raw != "" {
		priority, ok := task.ParsePriority(raw)
		if !ok {
			// Numeric form is accepted too.
			n, err := strconv.Atoi(raw)
			if err != nil || !task.Priority(n).IsValid() {
				return req, invalidQueryParam("priority")
			}
			priority = task.Priority(n)
		}
		req.Priority = &priority
	}
	if raw := q.Get("due_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return req, invalidQueryParam("due_from")
		}
		req.DueDateFrom = &from
	}
	if raw := q.Get("due_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return req, invalidQueryParam("due_to")
		}
		req.DueDateTo = &to
	}

	return req, nil
}
