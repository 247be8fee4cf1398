package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/domain/tag"
	"github.com/avoronkov/todoapp/internal/ports"
)

// Compile-time check that TagRepository implements ports.TagRepository.
var _ ports.TagRepository = (*TagRepository)(nil)

// TagRepository stores tags.
type TagRepository struct {
	store *Store
	uow   *UnitOfWork
}

// NewTagRepository creates a TagRepository staging writes into uow.
func NewTagRepository(store *Store, uow *UnitOfWork) *TagRepository {
	return &TagRepository{store: store, uow: uow}
}

// GetByID returns the tag with the given id, or (nil, nil) when absent.
func (r *TagRepository) GetByID(_ context.Context, id uuid.UUID) (*tag.Tag, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.tags[id], nil
}

// GetPaged returns one page of all tags ordered by name.
func (r *TagRepository) GetPaged(_ context.Context, req pagination.Request) (*pagination.Result[*tag.Tag], error) {
	r.store.mu.RLock()
	items := make([]*tag.Tag, 0, len(r.store.tags))
	for _, tg := range r.store.tags {
		items = append(items, tg)
	}
	r.store.mu.RUnlock()

	orderBy(items, compareTags, req.SortDirection)
	return paginate(items, req)
}

// GetTags returns one page of a user's tags, optionally narrowed to an
// exact name match.
func (r *TagRepository) GetTags(_ context.Context, req tag.Request) (*pagination.Result[*tag.Tag], error) {
	r.store.mu.RLock()
	items := []*tag.Tag{}
	for _, tg := range r.store.tags {
		if tg.OwnerID != req.OwnerID {
			continue
		}
		if req.ExactName != "" && tg.Name() != req.ExactName {
			continue
		}
		if req.HasSearch() && !strings.Contains(strings.ToLower(tg.Name()), strings.ToLower(req.NormalizedSearchTerm())) {
			continue
		}
		items = append(items, tg)
	}
	r.store.mu.RUnlock()

	orderBy(items, compareTags, req.SortDirection)
	return paginate(items, req.Request)
}

// Add stages an insert.
func (r *TagRepository) Add(ctx context.Context, tg *tag.Tag) (uuid.UUID, error) {
	if tg == nil {
		return uuid.Nil, domain.NewValidationError("tag", "must not be nil")
	}
	exists, _ := r.Exists(ctx, tg.ID)
	if exists {
		return uuid.Nil, &domain.ConflictError{Message: fmt.Sprintf("tag %q already exists", tg.ID)}
	}
	r.uow.stage(func(s *Store) int {
		s.tags[tg.ID] = tg
		return 1
	})
	return tg.ID, nil
}

// Update stages a replacement of an existing tag.
func (r *TagRepository) Update(ctx context.Context, tg *tag.Tag) (uuid.UUID, error) {
	if tg == nil {
		return uuid.Nil, domain.NewValidationError("tag", "must not be nil")
	}
	exists, _ := r.Exists(ctx, tg.ID)
	if !exists {
		return uuid.Nil, domain.NewNotFoundError("Tag", tg.ID)
	}
	r.uow.stage(func(s *Store) int {
		s.tags[tg.ID] = tg
		return 1
	})
	return tg.ID, nil
}

// Delete stages removal of the tag, detaching it from any tasks.
func (r *TagRepository) Delete(ctx context.Context, tg *tag.Tag) (uuid.UUID, error) {
	if tg == nil {
		return uuid.Nil, domain.NewValidationError("tag", "must not be nil")
	}
	exists, _ := r.Exists(ctx, tg.ID)
	if !exists {
		return uuid.Nil, domain.NewNotFoundError("Tag", tg.ID)
	}
	r.uow.stage(func(s *Store) int {
		s.detachTag(tg.ID)
		delete(s.tags, tg.ID)
		return 1
	})
	return tg.ID, nil
}

// DeleteByID stages removal by id, reporting whether the tag existed.
func (r *TagRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, _ := r.Exists(ctx, id)
	if !exists {
		return false, nil
	}
	r.uow.stage(func(s *Store) int {
		s.detachTag(id)
		delete(s.tags, id)
		return 1
	})
	return true, nil
}

// Exists reports whether a tag with the given id is stored.
func (r *TagRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.tags[id]
	return ok, nil
}

func compareTags(a, b *tag.Tag) int {
	if c := strings.Compare(a.Name(), b.Name()); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
