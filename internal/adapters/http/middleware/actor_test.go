package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/adapters/http/dto"
	"github.com/avoronkov/todoapp/internal/adapters/http/middleware"
)

func TestActor_ValidHeader(t *testing.T) {
	t.Parallel()

	actorID := uuid.New()
	var got uuid.UUID
	handler := middleware.Actor()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = middleware.ActorFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", http.NoBody)
	req.Header.Set(middleware.ActorHeader, actorID.String())
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got != actorID {
		t.Errorf("ActorFromContext = %v, want %v", got, actorID)
	}
}

func TestActor_RejectsBadHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a uuid", "user-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			handler := middleware.Actor()(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				called = true
			}))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", http.NoBody)
			if tt.header != "" {
				req.Header.Set(middleware.ActorHeader, tt.header)
			}
			handler.ServeHTTP(rec, req)

			if called {
				t.Error("handler was called, want request rejected")
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}

			var resp dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding problem response: %v", err)
			}
			if len(resp.Errors) != 1 {
				t.Fatalf("len(Errors) = %d, want 1", len(resp.Errors))
			}
		})
	}
}

func TestActorFromContext_Absent(t *testing.T) {
	t.Parallel()

	if got := middleware.ActorFromContext(context.Background()); got != uuid.Nil {
		t.Errorf("ActorFromContext = %v, want uuid.Nil", got)
	}
}
