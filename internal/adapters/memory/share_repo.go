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

// Compile-time check that ShareRepository implements ports.ShareRepository.
var _ ports.ShareRepository = (*ShareRepository)(nil)

// ShareRepository stores list share records and answers access checks.
type ShareRepository struct {
	store *Store
	uow   *UnitOfWork
}

// NewShareRepository creates a ShareRepository staging writes into uow.
func NewShareRepository(store *Store, uow *UnitOfWork) *ShareRepository {
	return &ShareRepository{store: store, uow: uow}
}

// GetByID returns the share with the given id, or (nil, nil) when absent.
func (r *ShareRepository) GetByID(_ context.Context, id uuid.UUID) (*list.Share, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.shares[id], nil
}

// GetPaged returns one page of all shares ordered by creation time.
func (r *ShareRepository) GetPaged(_ context.Context, req pagination.Request) (*pagination.Result[*list.Share], error) {
	r.store.mu.RLock()
	items := make([]*list.Share, 0, len(r.store.shares))
	for _, sh := range r.store.shares {
		items = append(items, sh)
	}
	r.store.mu.RUnlock()

	orderBy(items, compareShares, req.SortDirection)
	return paginate(items, req)
}

// GetShares returns one page of shares matching the request's filters.
func (r *ShareRepository) GetShares(_ context.Context, req list.ShareRequest) (*pagination.Result[*list.Share], error) {
	r.store.mu.RLock()
	items := []*list.Share{}
	for _, sh := range r.store.shares {
		if req.TodoListID != nil && sh.TodoListID != *req.TodoListID {
			continue
		}
		if req.UserID != nil && sh.UserID != *req.UserID {
			continue
		}
		if req.Permission != nil && sh.Permission() != *req.Permission {
			continue
		}
		items = append(items, sh)
	}
	r.store.mu.RUnlock()

	orderBy(items, compareShares, req.SortDirection)
	return paginate(items, req.Request)
}

// HasAccess reports whether the user may act on the list at the required
// level, through ownership or a share grant.
func (r *ShareRepository) HasAccess(_ context.Context, listID, userID uuid.UUID, required list.Permission) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.hasAccess(listID, userID, required), nil
}

// Add stages an insert.
func (r *ShareRepository) Add(ctx context.Context, sh *list.Share) (uuid.UUID, error) {
	if sh == nil {
		return uuid.Nil, domain.NewValidationError("share", "must not be nil")
	}
	exists, _ := r.Exists(ctx, sh.ID)
	if exists {
		return uuid.Nil, &domain.ConflictError{Message: fmt.Sprintf("share %q already exists", sh.ID)}
	}
	r.uow.stage(func(s *Store) int {
		s.shares[sh.ID] = sh
		return 1
	})
	return sh.ID, nil
}

// Update stages a replacement of an existing share.
func (r *ShareRepository) Update(ctx context.Context, sh *list.Share) (uuid.UUID, error) {
	if sh == nil {
		return uuid.Nil, domain.NewValidationError("share", "must not be nil")
	}
	exists, _ := r.Exists(ctx, sh.ID)
	if !exists {
		return uuid.Nil, domain.NewNotFoundError("TodoListShare", sh.ID)
	}
	r.uow.stage(func(s *Store) int {
		s.shares[sh.ID] = sh
		return 1
	})
	return sh.ID, nil
}

// Delete stages removal of the share.
func (r *ShareRepository) Delete(ctx context.Context, sh *list.Share) (uuid.UUID, error) {
	if sh == nil {
		return uuid.Nil, domain.NewValidationError("share", "must not be nil")
	}
	exists, _ := r.Exists(ctx, sh.ID)
	if !exists {
		return uuid.Nil, domain.NewNotFoundError("TodoListShare", sh.ID)
	}
	r.uow.stage(func(s *Store) int {
		delete(s.shares, sh.ID)
		return 1
	})
	return sh.ID, nil
}

// DeleteByID stages removal by id, reporting whether the share existed.
func (r *ShareRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, _ := r.Exists(ctx, id)
	if !exists {
		return false, nil
	}
	r.uow.stage(func(s *Store) int {
		delete(s.shares, id)
		return 1
	})
	return true, nil
}

// Exists reports whether a share with the given id is stored.
func (r *ShareRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.shares[id]
	return ok, nil
}

func compareShares(a, b *list.Share) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
