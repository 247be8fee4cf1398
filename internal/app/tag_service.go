package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/domain/tag"
	"github.com/avoronkov/todoapp/internal/ports"
)

// Compile-time check that TagService implements ports.TagService.
var _ ports.TagService = (*TagService)(nil)

// TagService implements ports.TagService. Tags are private to their owner,
// so access control reduces to an ownership check.
type TagService struct {
	tags   ports.TagRepository
	uow    ports.UnitOfWork
	logger *slog.Logger
}

// NewTagService creates a TagService.
func NewTagService(tags ports.TagRepository, uow ports.UnitOfWork, logger *slog.Logger) *TagService {
	return &TagService{
		tags:   tags,
		uow:    uow,
		logger: logger,
	}
}

// CreateTag creates a tag owned by the acting user. Names are unique per
// owner.
func (s *TagService) CreateTag(ctx context.Context, actorID uuid.UUID, name string) (*tag.Tag, error) {
	s.logger.InfoContext(ctx, "creating tag", slog.String("owner_id", actorID.String()))

	tg, err := tag.New(actorID, name)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, actorID, tg.Name(), uuid.Nil); err != nil {
		return nil, err
	}

	if _, err := s.tags.Add(ctx, tg); err != nil {
		s.logger.ErrorContext(ctx, "failed to store tag",
			slog.String("operation", "CreateTag"),
			slog.String("tag_id", tg.ID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("storing tag: %w", err)
	}
	if err := s.commit(ctx, "CreateTag"); err != nil {
		return nil, err
	}
	return tg, nil
}

// Tags returns one page of the acting user's tags.
func (s *TagService) Tags(ctx context.Context, actorID uuid.UUID, req tag.Request) (*pagination.Result[*tag.Tag], error) {
	s.logger.InfoContext(ctx, "listing tags", slog.String("owner_id", actorID.String()))

	req.OwnerID = actorID
	result, err := s.tags.GetTags(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tags",
			slog.String("operation", "Tags"),
			slog.String("owner_id", actorID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return result, nil
}

// RenameTag replaces a tag's name. Owner only.
func (s *TagService) RenameTag(ctx context.Context, actorID, tagID uuid.UUID, name string) (*tag.Tag, error) {
	s.logger.InfoContext(ctx, "renaming tag", slog.String("tag_id", tagID.String()))

	tg, err := s.loadOwnedTag(ctx, tagID, actorID)
	if err != nil {
		return nil, err
	}

	if err := tg.Rename(name, actorID); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, actorID, tg.Name(), tg.ID); err != nil {
		return nil, err
	}

	if _, err := s.tags.Update(ctx, tg); err != nil {
		return nil, fmt.Errorf("storing tag: %w", err)
	}
	if err := s.commit(ctx, "RenameTag"); err != nil {
		return nil, err
	}
	return tg, nil
}

// DeleteTag removes a tag. The tag disappears from any tasks it was
// attached to.
func (s *TagService) DeleteTag(ctx context.Context, actorID, tagID uuid.UUID) error {
	s.logger.InfoContext(ctx, "deleting tag", slog.String("tag_id", tagID.String()))

	tg, err := s.loadOwnedTag(ctx, tagID, actorID)
	if err != nil {
		return err
	}

	if _, err := s.tags.Delete(ctx, tg); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete tag",
			slog.String("operation", "DeleteTag"),
			slog.String("tag_id", tagID.String()),
			slog.Any("error", err),
		)
		return fmt.Errorf("deleting tag: %w", err)
	}
	return s.commit(ctx, "DeleteTag")
}

func (s *TagService) loadOwnedTag(ctx context.Context, tagID, actorID uuid.UUID) (*tag.Tag, error) {
	tg, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("fetching tag: %w", err)
	}
	if tg == nil {
		return nil, domain.NewNotFoundError("Tag", tagID)
	}
	if tg.OwnerID != actorID {
		return nil, domain.NewNotFoundError("Tag", tagID)
	}
	return tg, nil
}

// checkNameFree enforces per-owner name uniqueness. excludeID lets a rename
// keep its own current name.
func (s *TagService) checkNameFree(ctx context.Context, ownerID uuid.UUID, name string, excludeID uuid.UUID) error {
	existing, err := s.tags.GetTags(ctx, tag.Request{OwnerID: ownerID, ExactName: name})
	if err != nil {
		return fmt.Errorf("checking tag name: %w", err)
	}
	for _, tg := range existing.Items() {
		if tg.ID != excludeID {
			return &domain.ConflictError{Message: fmt.Sprintf("tag %q already exists", name)}
		}
	}
	return nil
}

func (s *TagService) commit(ctx context.Context, operation string) error {
	if _, err := s.uow.SaveChanges(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to commit changes",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return fmt.Errorf("saving changes: %w", err)
	}
	return nil
}
