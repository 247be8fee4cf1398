package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/adapters/http/dto"
	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
)

// parseUUID extracts a UUID path parameter from the chi URL params.
func parseUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &domain.ValidationError{
			Fields: map[string]string{param: "must be a valid UUID"},
		}
	}
	return id, nil
}

// parsePageRequest binds the shared pagination, search, and sort query
// parameters. Out-of-range values are clamped by the Request accessors, so
// binding never fails.
func parsePageRequest(r *http.Request) pagination.Request {
	q := r.URL.Query()

	req := pagination.Request{
		SearchTerm: q.Get("search"),
		SortBy:     q.Get("sort_by"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		req.PageNumber = page
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil {
		req.PageSize = size
	}
	if q.Get("sort_dir") == "desc" {
		req.SortDirection = pagination.Descending
	}
	return req
}

// invalidQueryParam builds the validation error reported for an
// unparseable query string value.
func invalidQueryParam(param string) error {
	return &domain.ValidationError{
		Fields: map[string]string{param: "invalid query parameter value"},
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
