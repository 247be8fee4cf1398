package handlers

import (
	"net/http"

	"github.com/avoronkov/todoapp/internal/adapters/http/dto"
	"github.com/avoronkov/todoapp/internal/adapters/http/middleware"
	"github.com/avoronkov/todoapp/internal/domain/tag"
	"github.com/avoronkov/todoapp/internal/ports"
)

// TagHandler handles HTTP requests for tag CRUD. Tags are private to their
// owner; every operation is scoped to the acting user.
type TagHandler struct {
	svc ports.TagService
}

// NewTagHandler creates a new TagHandler with the given service port.
func NewTagHandler(svc ports.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

// Tags handles GET /api/v1/tags.
func (h *TagHandler) Tags(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	req := tag.Request{Request: parsePageRequest(r)}

	res, err := h.svc.Tags(r.Context(), actorID, req)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPagedResponse(res, dto.ToTagResponse))
}

// CreateTag handles POST /api/v1/tags.
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	var req dto.CreateTagRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateTag(r.Context(), actorID, req.Name)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTagResponse(created))
}

// RenameTag handles PATCH /api/v1/tags/{tagId}.
func (h *TagHandler) RenameTag(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	tagID, err := parseUUID(r, "tagId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.RenameTagRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	renamed, err := h.svc.RenameTag(r.Context(), actorID, tagID, req.Name)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTagResponse(renamed))
}

// DeleteTag handles DELETE /api/v1/tags/{tagId}.
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorFromContext(r.Context())

	tagID, err := parseUUID(r, "tagId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteTag(r.Context(), actorID, tagID); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
