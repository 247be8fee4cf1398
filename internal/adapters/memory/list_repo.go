package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/ports"
)

// Compile-time check that ListRepository implements ports.TodoListRepository.
var _ ports.TodoListRepository = (*ListRepository)(nil)

// ListRepository stores TodoList aggregates.
type ListRepository struct {
	store *Store
	uow   *UnitOfWork
}

// NewListRepository creates a ListRepository staging writes into uow.
func NewListRepository(store *Store, uow *UnitOfWork) *ListRepository {
	return &ListRepository{store: store, uow: uow}
}

// GetByID returns the list with the given id, or (nil, nil) when absent.
func (r *ListRepository) GetByID(_ context.Context, id uuid.UUID) (*list.TodoList, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.lists[id], nil
}

// GetWithTasks returns the list with its task collection populated. The
// in-memory aggregate always carries its tasks, so this is GetByID under a
// contract that other adapters load lazily.
func (r *ListRepository) GetWithTasks(ctx context.Context, id uuid.UUID) (*list.TodoList, error) {
	return r.GetByID(ctx, id)
}

// GetPaged returns one page of all lists ordered by creation time.
func (r *ListRepository) GetPaged(_ context.Context, req pagination.Request) (*pagination.Result[*list.TodoList], error) {
	r.store.mu.RLock()
	items := make([]*list.TodoList, 0, len(r.store.lists))
	for _, l := range r.store.lists {
		items = append(items, l)
	}
	r.store.mu.RUnlock()

	orderBy(items, compareListsBy(req.SortBy), req.SortDirection)
	return paginate(items, req)
}

// GetLists returns one page of lists visible to the requesting user.
func (r *ListRepository) GetLists(_ context.Context, req list.Request) (*pagination.Result[*list.TodoList], error) {
	r.store.mu.RLock()
	visible := r.store.visibleListIDs(req.UserID)
	items := make([]*list.TodoList, 0, len(visible))
	for id, l := range r.store.lists {
		if req.OwnedOnly {
			if l.OwnerID != req.UserID {
				continue
			}
		} else if !visible[id] {
			continue
		}
		if req.HasSearch() && !matchesListSearch(l, req.NormalizedSearchTerm()) {
			continue
		}
		items = append(items, l)
	}
	r.store.mu.RUnlock()

	orderBy(items, compareListsBy(req.SortBy), req.SortDirection)
	return paginate(items, req.Request)
}

// Add stages an insert.
func (r *ListRepository) Add(ctx context.Context, l *list.TodoList) (uuid.UUID, error) {
	if l == nil {
		return uuid.Nil, domain.NewValidationError("list", "must not be nil")
	}
	exists, _ := r.Exists(ctx, l.ID)
	if exists {
		return uuid.Nil, &domain.ConflictError{Message: fmt.Sprintf("list %q already exists", l.ID)}
	}
	r.uow.stage(func(s *Store) int {
		s.lists[l.ID] = l
		return 1
	})
	return l.ID, nil
}

// Update stages a replacement of an existing list.
func (r *ListRepository) Update(ctx context.Context, l *list.TodoList) (uuid.UUID, error) {
	if l == nil {
		return uuid.Nil, domain.NewValidationError("list", "must not be nil")
	}
	exists, _ := r.Exists(ctx, l.ID)
	if !exists {
		return uuid.Nil, domain.NewNotFoundError("TodoList", l.ID)
	}
	r.uow.stage(func(s *Store) int {
		s.lists[l.ID] = l
		return 1
	})
	return l.ID, nil
}

// Delete stages removal of the list with its tasks, comments, and shares.
func (r *ListRepository) Delete(ctx context.Context, l *list.TodoList) (uuid.UUID, error) {
	if l == nil {
		return uuid.Nil, domain.NewValidationError("list", "must not be nil")
	}
	exists, _ := r.Exists(ctx, l.ID)
	if !exists {
		return uuid.Nil, domain.NewNotFoundError("TodoList", l.ID)
	}
	r.uow.stage(func(s *Store) int {
		return s.removeListCascade(l.ID)
	})
	return l.ID, nil
}

// DeleteByID stages removal by id, reporting whether the list existed.
func (r *ListRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, _ := r.Exists(ctx, id)
	if !exists {
		return false, nil
	}
	r.uow.stage(func(s *Store) int {
		return s.removeListCascade(id)
	})
	return true, nil
}

// Exists reports whether a list with the given id is stored.
func (r *ListRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.lists[id]
	return ok, nil
}

func matchesListSearch(l *list.TodoList, term string) bool {
	return l.Title().Contains(term) || l.Description().Contains(term)
}

// compareListsBy returns a three-way comparison for the given sort field.
// Unknown fields fall back to creation time; ties break on id for a stable
// order.
func compareListsBy(field string) func(a, b *list.TodoList) int {
	return func(a, b *list.TodoList) int {
		var c int
		switch field {
		case "title":
			c = strings.Compare(a.Title().Value(), b.Title().Value())
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = strings.Compare(a.ID.String(), b.ID.String())
		}
		return c
	}
}
