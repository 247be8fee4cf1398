package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/domain/task"
	"github.com/avoronkov/todoapp/internal/ports"
)

// Compile-time check that CommentRepository implements ports.CommentRepository.
var _ ports.CommentRepository = (*CommentRepository)(nil)

// CommentRepository stores task comments.
type CommentRepository struct {
	store *Store
	uow   *UnitOfWork
}

// NewCommentRepository creates a CommentRepository staging writes into uow.
func NewCommentRepository(store *Store, uow *UnitOfWork) *CommentRepository {
	return &CommentRepository{store: store, uow: uow}
}

// GetByID returns the comment with the given id, or (nil, nil) when absent.
func (r *CommentRepository) GetByID(_ context.Context, id uuid.UUID) (*task.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.comments[id], nil
}

// GetPaged returns one page of all comments ordered by creation time.
func (r *CommentRepository) GetPaged(_ context.Context, req pagination.Request) (*pagination.Result[*task.Comment], error) {
	r.store.mu.RLock()
	items := make([]*task.Comment, 0, len(r.store.comments))
	for _, c := range r.store.comments {
		items = append(items, c)
	}
	r.store.mu.RUnlock()

	orderBy(items, compareComments, req.SortDirection)
	return paginate(items, req)
}

// GetComments returns one page of a task's comments in creation order.
func (r *CommentRepository) GetComments(_ context.Context, req task.CommentRequest) (*pagination.Result[*task.Comment], error) {
	r.store.mu.RLock()
	items := []*task.Comment{}
	for _, c := range r.store.comments {
		if c.TodoTaskID != req.TodoTaskID {
			continue
		}
		if req.AuthorID != nil && c.AuthorID != *req.AuthorID {
			continue
		}
		items = append(items, c)
	}
	r.store.mu.RUnlock()

	orderBy(items, compareComments, req.SortDirection)
	return paginate(items, req.Request)
}

// Add stages an insert.
func (r *CommentRepository) Add(ctx context.Context, c *task.Comment) (uuid.UUID, error) {
	if c == nil {
		return uuid.Nil, domain.NewValidationError("comment", "must not be nil")
	}
	exists, _ := r.Exists(ctx, c.ID)
	if exists {
		return uuid.Nil, &domain.ConflictError{Message: fmt.Sprintf("comment %q already exists", c.ID)}
	}
	r.uow.stage(func(s *Store) int {
		s.comments[c.ID] = c
		return 1
	})
	return c.ID, nil
}

// Update stages a replacement of an existing comment.
func (r *CommentRepository) Update(ctx context.Context, c *task.Comment) (uuid.UUID, error) {
	if c == nil {
		return uuid.Nil, domain.NewValidationError("comment", "must not be nil")
	}
	exists, _ := r.Exists(ctx, c.ID)
	if !exists {
		return uuid.Nil, domain.NewNotFoundError("Comment", c.ID)
	}
	r.uow.stage(func(s *Store) int {
		s.comments[c.ID] = c
		return 1
	})
	return c.ID, nil
}

// Delete stages removal of the comment.
func (r *CommentRepository) Delete(ctx context.Context, c *task.Comment) (uuid.UUID, error) {
	if c == nil {
		return uuid.Nil, domain.NewValidationError("comment", "must not be nil")
	}
	exists, _ := r.Exists(ctx, c.ID)
	if !exists {
		return uuid.Nil, domain.NewNotFoundError("Comment", c.ID)
	}
	r.uow.stage(func(s *Store) int {
		delete(s.comments, c.ID)
		return 1
	})
	return c.ID, nil
}

// DeleteByID stages removal by id, reporting whether the comment existed.
func (r *CommentRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, _ := r.Exists(ctx, id)
	if !exists {
		return false, nil
	}
	r.uow.stage(func(s *Store) int {
		delete(s.comments, id)
		return 1
	})
	return true, nil
}

// Exists reports whether a comment with the given id is stored.
func (r *CommentRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.comments[id]
	return ok, nil
}

func compareComments(a, b *task.Comment) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
