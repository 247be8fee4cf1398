// Package app provides application services that orchestrate use cases by
// coordinating domain aggregates and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/domain/task"
	"github.com/avoronkov/todoapp/internal/ports"
)

// Compile-time check that ListService implements ports.ListService.
var _ ports.ListService = (*ListService)(nil)

// ListService implements ports.ListService. It enforces access control,
// drives the TodoList aggregate, commits staged writes through the unit of
// work, and hands buffered domain events to the publisher after a
// successful commit.
type ListService struct {
	lists     ports.TodoListRepository
	tasks     ports.TaskRepository
	shares    ports.ShareRepository
	uow       ports.UnitOfWork
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewListService creates a ListService.
func NewListService(
	lists ports.TodoListRepository,
	tasks ports.TaskRepository,
	shares ports.ShareRepository,
	uow ports.UnitOfWork,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *ListService {
	return &ListService{
		lists:     lists,
		tasks:     tasks,
		shares:    shares,
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateList creates a list owned by the acting user.
func (s *ListService) CreateList(ctx context.Context, actorID uuid.UUID, title, description string) (*list.TodoList, error) {
	s.logger.InfoContext(ctx, "creating list", slog.String("owner_id", actorID.String()))

	t, err := domain.NewTitle(title)
	if err != nil {
		return nil, err
	}
	d, err := domain.NewDescription(description)
	if err != nil {
		return nil, err
	}

	l := list.New(actorID, t, d)
	if _, err := s.lists.Add(ctx, l); err != nil {
		s.logger.ErrorContext(ctx, "failed to store list",
			slog.String("operation", "CreateList"),
			slog.String("list_id", l.ID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("storing list: %w", err)
	}
	if err := s.commit(ctx, "CreateList"); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, l)
	return l, nil
}

// GetList returns a list with its tasks populated.
func (s *ListService) GetList(ctx context.Context, actorID, listID uuid.UUID) (*list.TodoList, error) {
	s.logger.InfoContext(ctx, "fetching list", slog.String("list_id", listID.String()))

	l, err := s.lists.GetWithTasks(ctx, listID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch list",
			slog.String("operation", "GetList"),
			slog.String("list_id", listID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetching list: %w", err)
	}
	if l == nil {
		return nil, domain.NewNotFoundError("TodoList", listID)
	}
	if err := s.requireAccess(ctx, listID, actorID, list.PermissionReadOnly); err != nil {
		return nil, err
	}
	return l, nil
}

// Lists returns one page of lists visible to the acting user.
func (s *ListService) Lists(ctx context.Context, actorID uuid.UUID, req list.Request) (*pagination.Result[*list.TodoList], error) {
	s.logger.InfoContext(ctx, "listing lists", slog.String("user_id", actorID.String()))

	req.UserID = actorID
	result, err := s.lists.GetLists(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list lists",
			slog.String("operation", "Lists"),
			slog.String("user_id", actorID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("listing lists: %w", err)
	}
	return result, nil
}

// UpdateList applies the non-nil fields of the update to the list.
func (s *ListService) UpdateList(ctx context.Context, actorID, listID uuid.UUID, update ports.ListUpdate) (*list.TodoList, error) {
	s.logger.InfoContext(ctx, "updating list", slog.String("list_id", listID.String()))

	l, err := s.loadList(ctx, "UpdateList", listID, actorID, list.PermissionFullAccess)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		t, err := domain.NewTitle(*update.Title)
		if err != nil {
			return nil, err
		}
		l.UpdateTitle(t, actorID)
	}
	if update.Description != nil {
		d, err := domain.NewDescription(*update.Description)
		if err != nil {
			return nil, err
		}
		l.UpdateDescription(d, actorID)
	}

	if _, err := s.lists.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("storing list: %w", err)
	}
	if err := s.commit(ctx, "UpdateList"); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, l)
	return l, nil
}

// DeleteList removes the list with its tasks and shares. Owner only.
func (s *ListService) DeleteList(ctx context.Context, actorID, listID uuid.UUID) error {
	s.logger.InfoContext(ctx, "deleting list", slog.String("list_id", listID.String()))

	l, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return fmt.Errorf("fetching list: %w", err)
	}
	if l == nil {
		return domain.NewNotFoundError("TodoList", listID)
	}
	if l.OwnerID != actorID {
		return &domain.AccessDeniedError{TodoListID: listID, UserID: actorID}
	}

	if _, err := s.lists.Delete(ctx, l); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete list",
			slog.String("operation", "DeleteList"),
			slog.String("list_id", listID.String()),
			slog.Any("error", err),
		)
		return fmt.Errorf("deleting list: %w", err)
	}
	return s.commit(ctx, "DeleteList")
}

// AddTask creates a task inside the list.
func (s *ListService) AddTask(ctx context.Context, actorID, listID uuid.UUID, input ports.NewTask) (*task.Task, error) {
	s.logger.InfoContext(ctx, "adding task to list", slog.String("list_id", listID.String()))

	l, err := s.loadList(ctx, "AddTask", listID, actorID, list.PermissionFullAccess)
	if err != nil {
		return nil, err
	}

	title, err := domain.NewTaskTitle(input.Title)
	if err != nil {
		return nil, err
	}
	desc, err := domain.NewTaskDescription(input.Description)
	if err != nil {
		return nil, err
	}
	t, err := task.New(listID, actorID, title, desc, input.Priority, input.DueDate)
	if err != nil {
		return nil, err
	}
	if err := l.AddTask(t); err != nil {
		return nil, err
	}

	if _, err := s.tasks.Add(ctx, t); err != nil {
		return nil, fmt.Errorf("storing task: %w", err)
	}
	if _, err := s.lists.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("storing list: %w", err)
	}
	if err := s.commit(ctx, "AddTask"); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, l)
	return t, nil
}

// RemoveTask deletes a task from the list.
func (s *ListService) RemoveTask(ctx context.Context, actorID, listID, taskID uuid.UUID) error {
	s.logger.InfoContext(ctx, "removing task from list",
		slog.String("list_id", listID.String()),
		slog.String("task_id", taskID.String()),
	)

	l, err := s.loadListWithTasks(ctx, "RemoveTask", listID, actorID, list.PermissionFullAccess)
	if err != nil {
		return err
	}
	if !l.RemoveTask(taskID) {
		return domain.NewNotFoundError("TodoTask", taskID)
	}

	if _, err := s.tasks.DeleteByID(ctx, taskID); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if _, err := s.lists.Update(ctx, l); err != nil {
		return fmt.Errorf("storing list: %w", err)
	}
	if err := s.commit(ctx, "RemoveTask"); err != nil {
		return err
	}

	s.publishEvents(ctx, l)
	return nil
}

// ShareList grants a user access to the list. Owner only.
func (s *ListService) ShareList(ctx context.Context, actorID, listID, userID uuid.UUID, permission list.Permission) (*list.Share, error) {
	s.logger.InfoContext(ctx, "sharing list",
		slog.String("list_id", listID.String()),
		slog.String("user_id", userID.String()),
	)

	l, err := s.loadOwnedList(ctx, listID, actorID)
	if err != nil {
		return nil, err
	}

	share, err := l.ShareWith(userID, permission, actorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.shares.Add(ctx, share); err != nil {
		return nil, fmt.Errorf("storing share: %w", err)
	}
	if _, err := s.lists.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("storing list: %w", err)
	}
	if err := s.commit(ctx, "ShareList"); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, l)
	return share, nil
}

// ChangeSharePermission replaces the access level of an existing grant.
// Owner only.
func (s *ListService) ChangeSharePermission(ctx context.Context, actorID, listID, userID uuid.UUID, permission list.Permission) error {
	s.logger.InfoContext(ctx, "changing share permission",
		slog.String("list_id", listID.String()),
		slog.String("user_id", userID.String()),
	)

	l, err := s.loadOwnedList(ctx, listID, actorID)
	if err != nil {
		return err
	}
	if err := l.ChangeSharePermission(userID, permission, actorID); err != nil {
		return err
	}

	if _, err := s.shares.Update(ctx, l.FindShare(userID)); err != nil {
		return fmt.Errorf("storing share: %w", err)
	}
	if _, err := s.lists.Update(ctx, l); err != nil {
		return fmt.Errorf("storing list: %w", err)
	}
	if err := s.commit(ctx, "ChangeSharePermission"); err != nil {
		return err
	}

	s.publishEvents(ctx, l)
	return nil
}

// RevokeShare withdraws a user's access to the list. Owner only.
func (s *ListService) RevokeShare(ctx context.Context, actorID, listID, userID uuid.UUID) error {
	s.logger.InfoContext(ctx, "revoking share",
		slog.String("list_id", listID.String()),
		slog.String("user_id", userID.String()),
	)

	l, err := s.loadOwnedList(ctx, listID, actorID)
	if err != nil {
		return err
	}

	share := l.FindShare(userID)
	if share == nil {
		return domain.NewNotFoundError("TodoListShare", userID)
	}
	l.RevokeShare(userID, actorID)

	if _, err := s.shares.Delete(ctx, share); err != nil {
		return fmt.Errorf("deleting share: %w", err)
	}
	if _, err := s.lists.Update(ctx, l); err != nil {
		return fmt.Errorf("storing list: %w", err)
	}
	if err := s.commit(ctx, "RevokeShare"); err != nil {
		return err
	}

	s.publishEvents(ctx, l)
	return nil
}

// Shares returns one page of the list's share records.
func (s *ListService) Shares(ctx context.Context, actorID, listID uuid.UUID, req pagination.Request) (*pagination.Result[*list.Share], error) {
	s.logger.InfoContext(ctx, "listing shares", slog.String("list_id", listID.String()))

	if _, err := s.loadList(ctx, "Shares", listID, actorID, list.PermissionReadOnly); err != nil {
		return nil, err
	}

	result, err := s.shares.GetShares(ctx, list.ShareRequest{Request: req, TodoListID: &listID})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list shares",
			slog.String("operation", "Shares"),
			slog.String("list_id", listID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("listing shares: %w", err)
	}
	return result, nil
}

// loadList fetches a list and checks the actor's access against the
// required permission.
func (s *ListService) loadList(ctx context.Context, operation string, listID, actorID uuid.UUID, required list.Permission) (*list.TodoList, error) {
	l, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch list",
			slog.String("operation", operation),
			slog.String("list_id", listID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetching list: %w", err)
	}
	if l == nil {
		return nil, domain.NewNotFoundError("TodoList", listID)
	}
	if err := s.requireAccess(ctx, listID, actorID, required); err != nil {
		return nil, err
	}
	return l, nil
}

// loadListWithTasks is loadList with the task collection populated.
func (s *ListService) loadListWithTasks(ctx context.Context, operation string, listID, actorID uuid.UUID, required list.Permission) (*list.TodoList, error) {
	l, err := s.lists.GetWithTasks(ctx, listID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch list",
			slog.String("operation", operation),
			slog.String("list_id", listID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetching list: %w", err)
	}
	if l == nil {
		return nil, domain.NewNotFoundError("TodoList", listID)
	}
	if err := s.requireAccess(ctx, listID, actorID, required); err != nil {
		return nil, err
	}
	return l, nil
}

// loadOwnedList fetches a list and verifies the actor owns it.
func (s *ListService) loadOwnedList(ctx context.Context, listID, actorID uuid.UUID) (*list.TodoList, error) {
	l, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("fetching list: %w", err)
	}
	if l == nil {
		return nil, domain.NewNotFoundError("TodoList", listID)
	}
	if l.OwnerID != actorID {
		return nil, &domain.AccessDeniedError{TodoListID: listID, UserID: actorID}
	}
	return l, nil
}

func (s *ListService) requireAccess(ctx context.Context, listID, actorID uuid.UUID, required list.Permission) error {
	ok, err := s.shares.HasAccess(ctx, listID, actorID, required)
	if err != nil {
		return fmt.Errorf("checking access: %w", err)
	}
	if !ok {
		return &domain.AccessDeniedError{TodoListID: listID, UserID: actorID}
	}
	return nil
}

// commit applies the staged writes. Commit failures are logged with the
// calling operation for traceability.
func (s *ListService) commit(ctx context.Context, operation string) error {
	if _, err := s.uow.SaveChanges(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to commit changes",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return fmt.Errorf("saving changes: %w", err)
	}
	return nil
}

// publishEvents hands the aggregate's buffered events to the publisher and
// clears the buffer. Publishing is best effort after commit; failures are
// logged, never propagated.
func (s *ListService) publishEvents(ctx context.Context, l *list.TodoList) {
	events := l.DomainEvents()
	l.ClearDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events); err != nil {
		s.logger.WarnContext(ctx, "failed to publish domain events",
			slog.String("list_id", l.ID.String()),
			slog.Int("count", len(events)),
			slog.Any("error", err),
		)
	}
}
