package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/domain/task"
	"github.com/avoronkov/todoapp/internal/ports"
)

// Compile-time check that TaskRepository implements ports.TaskRepository.
var _ ports.TaskRepository = (*TaskRepository)(nil)

// TaskRepository stores tasks.
type TaskRepository struct {
	store *Store
	uow   *UnitOfWork
}

// NewTaskRepository creates a TaskRepository staging writes into uow.
func NewTaskRepository(store *Store, uow *UnitOfWork) *TaskRepository {
	return &TaskRepository{store: store, uow: uow}
}

// GetByID returns the task with the given id, or (nil, nil) when absent.
func (r *TaskRepository) GetByID(_ context.Context, id uuid.UUID) (*task.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.tasks[id], nil
}

// GetPaged returns one page of all tasks ordered by creation time.
func (r *TaskRepository) GetPaged(_ context.Context, req pagination.Request) (*pagination.Result[*task.Task], error) {
	r.store.mu.RLock()
	items := make([]*task.Task, 0, len(r.store.tasks))
	for _, t := range r.store.tasks {
		items = append(items, t)
	}
	r.store.mu.RUnlock()

	orderBy(items, compareTasksBy(req.SortBy), req.SortDirection)
	return paginate(items, req)
}

// GetTasks returns one page of tasks matching the request's filters.
func (r *TaskRepository) GetTasks(_ context.Context, req task.Request) (*pagination.Result[*task.Task], error) {
	r.store.mu.RLock()
	var visible map[uuid.UUID]bool
	if req.UserID != nil {
		visible = r.store.visibleListIDs(*req.UserID)
	}
	var items []*task.Task
	for _, t := range r.store.tasks {
		if !matchesTaskRequest(t, req, visible) {
			continue
		}
		items = append(items, t)
	}
	r.store.mu.RUnlock()

	if items == nil {
		items = []*task.Task{}
	}
	orderBy(items, compareTasksBy(req.SortBy), req.SortDirection)
	return paginate(items, req.Request)
}

// Add stages an insert.
func (r *TaskRepository) Add(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	if t == nil {
		return uuid.Nil, domain.NewValidationError("task", "must not be nil")
	}
	exists, _ := r.Exists(ctx, t.ID)
	if exists {
		return uuid.Nil, &domain.ConflictError{Message: fmt.Sprintf("task %q already exists", t.ID)}
	}
	r.uow.stage(func(s *Store) int {
		s.tasks[t.ID] = t
		return 1
	})
	return t.ID, nil
}

// Update stages a replacement of an existing task.
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	if t == nil {
		return uuid.Nil, domain.NewValidationError("task", "must not be nil")
	}
	exists, _ := r.Exists(ctx, t.ID)
	if !exists {
		return uuid.Nil, domain.NewNotFoundError("TodoTask", t.ID)
	}
	r.uow.stage(func(s *Store) int {
		s.tasks[t.ID] = t
		return 1
	})
	return t.ID, nil
}

// Delete stages removal of the task and its comments.
func (r *TaskRepository) Delete(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	if t == nil {
		return uuid.Nil, domain.NewValidationError("task", "must not be nil")
	}
	exists, _ := r.Exists(ctx, t.ID)
	if !exists {
		return uuid.Nil, domain.NewNotFoundError("TodoTask", t.ID)
	}
	r.uow.stage(func(s *Store) int {
		delete(s.tasks, t.ID)
		return 1 + s.removeTaskComments(t.ID)
	})
	return t.ID, nil
}

// DeleteByID stages removal by id, reporting whether the task existed.
func (r *TaskRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, _ := r.Exists(ctx, id)
	if !exists {
		return false, nil
	}
	r.uow.stage(func(s *Store) int {
		delete(s.tasks, id)
		return 1 + s.removeTaskComments(id)
	})
	return true, nil
}

// Exists reports whether a task with the given id is stored.
func (r *TaskRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.tasks[id]
	return ok, nil
}

func matchesTaskRequest(t *task.Task, req task.Request, visible map[uuid.UUID]bool) bool {
	if req.TodoListID != nil && t.TodoListID() != *req.TodoListID {
		return false
	}
	if visible != nil && !visible[t.TodoListID()] {
		return false
	}
	if req.Status != nil && t.Status() != *req.Status {
		return false
	}
	if req.Priority != nil && t.Priority() != *req.Priority {
		return false
	}
	if req.AssignedUserID != nil {
		assignee := t.AssignedUserID()
		if assignee == nil || *assignee != *req.AssignedUserID {
			return false
		}
	}
	if req.OverdueOnly && !t.IsOverdue() {
		return false
	}
	if due := t.DueDate(); req.DueDateFrom != nil || req.DueDateTo != nil {
		if due == nil {
			return false
		}
		if req.DueDateFrom != nil && due.Before(*req.DueDateFrom) {
			return false
		}
		if req.DueDateTo != nil && due.After(*req.DueDateTo) {
			return false
		}
	}
	if req.HasSearch() {
		term := req.NormalizedSearchTerm()
		if !t.Title().Contains(term) && !t.Description().Contains(term) {
			return false
		}
	}
	return true
}

// compareTasksBy returns a three-way comparison for the given sort field.
// Unknown fields fall back to creation time; ties break on id.
func compareTasksBy(field string) func(a, b *task.Task) int {
	return func(a, b *task.Task) int {
		var c int
		switch field {
		case "title":
			c = strings.Compare(a.Title().Value(), b.Title().Value())
		case "priority":
			c = int(a.Priority()) - int(b.Priority())
		case "status":
			c = strings.Compare(a.Status().String(), b.Status().String())
		case "due_date":
			c = compareDueDates(a.DueDate(), b.DueDate())
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = strings.Compare(a.ID.String(), b.ID.String())
		}
		return c
	}
}

// compareDueDates sorts tasks without a due date after dated ones.
func compareDueDates(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}
