package app

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/avoronkov/todoapp/internal/adapters/memory"
	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/task"
	"github.com/avoronkov/todoapp/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// recordingPublisher captures every published event so tests can assert on
// what left the service after a commit.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events []domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventName()
	}
	return out
}

// fixture wires the services against the in-memory adapter so service tests
// exercise real repository and unit-of-work behavior.
type fixture struct {
	store     *memory.Store
	publisher *recordingPublisher

	lists *ListService
	tasks *TaskService
	tags  *TagService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	uow := memory.NewUnitOfWork(store)
	listRepo := memory.NewListRepository(store, uow)
	taskRepo := memory.NewTaskRepository(store, uow)
	commentRepo := memory.NewCommentRepository(store, uow)
	tagRepo := memory.NewTagRepository(store, uow)
	shareRepo := memory.NewShareRepository(store, uow)
	publisher := &recordingPublisher{}
	logger := discardLogger()

	return &fixture{
		store:     store,
		publisher: publisher,
		lists:     NewListService(listRepo, taskRepo, shareRepo, uow, publisher, logger),
		tasks:     NewTaskService(taskRepo, commentRepo, tagRepo, shareRepo, uow, logger),
		tags:      NewTagService(tagRepo, uow, logger),
	}
}

// mustCreateList seeds a list through the service layer and resets the
// publisher so assertions only see events from the operation under test.
func (f *fixture) mustCreateList(t *testing.T, ownerID uuid.UUID, title string) *list.TodoList {
	t.Helper()

	l, err := f.lists.CreateList(context.Background(), ownerID, title, "")
	require.NoError(t, err)
	f.publisher.events = nil
	return l
}

func (f *fixture) mustAddTask(t *testing.T, actorID, listID uuid.UUID, title string) *task.Task {
	t.Helper()

	tk, err := f.lists.AddTask(context.Background(), actorID, listID, ports.NewTask{Title: title})
	require.NoError(t, err)
	f.publisher.events = nil
	return tk
}

func (f *fixture) mustShare(t *testing.T, ownerID, listID, userID uuid.UUID, permission list.Permission) {
	t.Helper()

	_, err := f.lists.ShareList(context.Background(), ownerID, listID, userID, permission)
	require.NoError(t, err)
	f.publisher.events = nil
}
