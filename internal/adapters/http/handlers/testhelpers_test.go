package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/adapters/http/handlers"
	"github.com/avoronkov/todoapp/internal/adapters/http/middleware"
	"github.com/avoronkov/todoapp/internal/adapters/memory"
	"github.com/avoronkov/todoapp/internal/app"
	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/task"
	"github.com/avoronkov/todoapp/internal/ports"
)

// handlerFixture wires the handlers against real services over the in-memory
// adapter, so handler tests cover the full inbound path below the router.
type handlerFixture struct {
	lists *handlers.ListHandler
	tasks *handlers.TaskHandler
	tags  *handlers.TagHandler

	listSvc ports.ListService
	taskSvc ports.TaskService
	tagSvc  ports.TagService
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, []domain.Event) error { return nil }

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	store := memory.NewStore()
	uow := memory.NewUnitOfWork(store)
	listRepo := memory.NewListRepository(store, uow)
	taskRepo := memory.NewTaskRepository(store, uow)
	commentRepo := memory.NewCommentRepository(store, uow)
	tagRepo := memory.NewTagRepository(store, uow)
	shareRepo := memory.NewShareRepository(store, uow)
	logger := slog.New(slog.DiscardHandler)

	listSvc := app.NewListService(listRepo, taskRepo, shareRepo, uow, nopPublisher{}, logger)
	taskSvc := app.NewTaskService(taskRepo, commentRepo, tagRepo, shareRepo, uow, logger)
	tagSvc := app.NewTagService(tagRepo, uow, logger)

	return &handlerFixture{
		lists:   handlers.NewListHandler(listSvc),
		tasks:   handlers.NewTaskHandler(taskSvc),
		tags:    handlers.NewTagHandler(tagSvc),
		listSvc: listSvc,
		taskSvc: taskSvc,
		tagSvc:  tagSvc,
	}
}

func (f *handlerFixture) seedList(t *testing.T, ownerID uuid.UUID, title string) *list.TodoList {
	t.Helper()
	l, err := f.listSvc.CreateList(context.Background(), ownerID, title, "")
	if err != nil {
		t.Fatalf("seeding list: %v", err)
	}
	return l
}

func (f *handlerFixture) seedTask(t *testing.T, actorID, listID uuid.UUID, title string) *task.Task {
	t.Helper()
	tk, err := f.listSvc.AddTask(context.Background(), actorID, listID, ports.NewTask{Title: title})
	if err != nil {
		t.Fatalf("seeding task: %v", err)
	}
	return tk
}

// newRequest builds a request with the actor set the way middleware.Actor
// would, plus any chi URL params.
func newRequest(t *testing.T, method, target string, actorID uuid.UUID, body *bytes.Buffer, params map[string]string) *http.Request {
	t.Helper()

	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, body)
	} else {
		r = httptest.NewRequest(method, target, http.NoBody)
	}
	r.Header.Set(middleware.ActorHeader, actorID.String())

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// serve runs the request through the actor middleware and the given handler.
func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.Actor()(h).ServeHTTP(rec, r)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
