package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	adapthttp "github.com/avoronkov/todoapp/internal/adapters/http"
	"github.com/avoronkov/todoapp/internal/adapters/http/handlers"
	"github.com/avoronkov/todoapp/internal/adapters/http/middleware"
	"github.com/avoronkov/todoapp/internal/adapters/memory"
	"github.com/avoronkov/todoapp/internal/app"
	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/platform/health"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, []domain.Event) error { return nil }

func newTestRouter(t *testing.T, middlewares ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()

	store := memory.NewStore()
	uow := memory.NewUnitOfWork(store)
	logger := discardLogger()

	listSvc := app.NewListService(
		memory.NewListRepository(store, uow),
		memory.NewTaskRepository(store, uow),
		memory.NewShareRepository(store, uow),
		uow, nopPublisher{}, logger,
	)
	taskSvc := app.NewTaskService(
		memory.NewTaskRepository(store, uow),
		memory.NewCommentRepository(store, uow),
		memory.NewTagRepository(store, uow),
		memory.NewShareRepository(store, uow),
		uow, logger,
	)
	tagSvc := app.NewTagService(memory.NewTagRepository(store, uow), uow, logger)

	return adapthttp.NewRouter(
		handlers.NewListHandler(listSvc),
		handlers.NewTaskHandler(taskSvc),
		handlers.NewTagHandler(tagSvc),
		handlers.NewHealthHandler(health.New()),
		middlewares...,
	)
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/api/v1/lists"},
		{http.MethodPost, "/api/v1/lists"},
		{http.MethodGet, "/api/v1/lists/{listId}"},
		{http.MethodPatch, "/api/v1/lists/{listId}"},
		{http.MethodDelete, "/api/v1/lists/{listId}"},
		{http.MethodPost, "/api/v1/lists/{listId}/tasks"},
		{http.MethodDelete, "/api/v1/lists/{listId}/tasks/{taskId}"},
		{http.MethodGet, "/api/v1/lists/{listId}/shares"},
		{http.MethodPost, "/api/v1/lists/{listId}/shares"},
		{http.MethodPatch, "/api/v1/lists/{listId}/shares/{userId}"},
		{http.MethodDelete, "/api/v1/lists/{listId}/shares/{userId}"},
		{http.MethodGet, "/api/v1/tasks"},
		{http.MethodPost, "/api/v1/tasks/bulk/status"},
		{http.MethodGet, "/api/v1/tasks/{taskId}"},
		{http.MethodPatch, "/api/v1/tasks/{taskId}"},
		{http.MethodPut, "/api/v1/tasks/{taskId}/status"},
		{http.MethodPut, "/api/v1/tasks/{taskId}/priority"},
		{http.MethodPut, "/api/v1/tasks/{taskId}/due-date"},
		{http.MethodDelete, "/api/v1/tasks/{taskId}/due-date"},
		{http.MethodPut, "/api/v1/tasks/{taskId}/assignee"},
		{http.MethodGet, "/api/v1/tasks/{taskId}/comments"},
		{http.MethodPost, "/api/v1/tasks/{taskId}/comments"},
		{http.MethodPatch, "/api/v1/comments/{commentId}"},
		{http.MethodDelete, "/api/v1/comments/{commentId}"},
		{http.MethodPut, "/api/v1/tasks/{taskId}/tags/{tagId}"},
		{http.MethodDelete, "/api/v1/tasks/{taskId}/tags/{tagId}"},
		{http.MethodGet, "/api/v1/tags"},
		{http.MethodPost, "/api/v1/tags"},
		{http.MethodPatch, "/api/v1/tags/{tagId}"},
		{http.MethodDelete, "/api/v1/tags/{tagId}"},
	}

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, expected := range expectedRoutes {
		key := expected.method + " " + expected.path
		if !registered[key] {
			t.Errorf("route %s not registered", key)
		}
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	router := newTestRouter(t, testMW)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	router.ServeHTTP(rec, req)

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_HealthRoutesSkipActorCheck(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d without identity header", rec.Code, http.StatusOK)
	}
}

func TestRouter_APIRequiresActor(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d without identity header", rec.Code, http.StatusBadRequest)
	}
}

func TestRouter_IntegrationLists(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", nil)
	req.Header.Set(middleware.ActorHeader, uuid.NewString())
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestRouter_NotFoundReturns404(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/lists", nil)
	req.Header.Set(middleware.ActorHeader, uuid.NewString())
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
