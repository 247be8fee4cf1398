// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/avoronkov/todoapp/internal/adapters/http/dto"
	"github.com/avoronkov/todoapp/internal/adapters/http/middleware"
	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/ports"
)

// ListHandler handles HTTP requests for todo list CRUD, nested task
// creation, and share management.
type ListHandler struct {
	svc ports.ListService
}

// NewListHandler creates a new ListHandler with the given service port.
func NewListHandler(svc ports.ListService) *ListHandler {
	return &ListHandler{svc: svc}
}

// Lists handles GET /api/v1/lists.
func (h *ListHandler) Lists(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	req := list.Request{
		Request:   parsePageRequest(r),
		OwnedOnly: r.URL.Query().Get("owned_only") == "true",
	}

	res, err := h.svc.Lists(r.Context(), actorID, req)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPagedResponse(res, dto.ToListResponse))
}

// CreateList handles POST /api/v1/lists.
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	var req dto.CreateListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateList(r.Context(), actorID, req.Title, req.Description)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToListResponse(created))
}

// GetList handles GET /api/v1/lists/{listId}.
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	listID, err := parseUUID(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	l, err := h.svc.GetList(r.Context(), actorID, listID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListResponse(l))
}

// UpdateList handles PATCH /api/v1/lists/{listId}.
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	listID, err := parseUUID(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateList(r.Context(), actorID, listID, ports.ListUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListResponse(updated))
}

// DeleteList handles DELETE /api/v1/lists/{listId}.
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	listID, err := parseUUID(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteList(r.Context(), actorID, listID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddTask handles POST /api/v1/lists/{listId}/tasks.
func (h *ListHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	listID, err := parseUUID(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.AddTask(r.Context(), actorID, listID, ports.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.ParsedPriority(),
		DueDate:     req.DueDate,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTaskResponse(created))
}

// RemoveTask handles DELETE /api/v1/lists/{listId}/tasks/{taskId}.
func (h *ListHandler) RemoveTask(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	listID, err := parseUUID(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.RemoveTask(r.Context(), actorID, listID, taskID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Shares handles GET /api/v1/lists/{listId}/shares.
func (h *ListHandler) Shares(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	listID, err := parseUUID(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	res, err := h.svc.Shares(r.Context(), actorID, listID, parsePageRequest(r))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPagedResponse(res, dto.ToShareResponse))
}

// ShareList handles POST /api/v1/lists/{listId}/shares.
func (h *ListHandler) ShareList(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	listID, err := parseUUID(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.ShareListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	share, err := h.svc.ShareList(r.Context(), actorID, listID, req.UserID, list.Permission(req.Permission))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToShareResponse(share))
}

// ChangeSharePermission handles PATCH /api/v1/lists/{listId}/shares/{userId}.
func (h *ListHandler) ChangeSharePermission(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	listID, err := parseUUID(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	userID, err := parseUUID(r, "userId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateShareRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.ChangeSharePermission(r.Context(), actorID, listID, userID, list.Permission(req.Permission)); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RevokeShare handles DELETE /api/v1/lists/{listId}/shares/{userId}.
func (h *ListHandler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	listID, err := parseUUID(r, "listId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	userID, err := parseUUID(r, "userId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.RevokeShare(r.Context(), actorID, listID, userID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
