package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/app/fanout"
	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/domain/task"
	"github.com/avoronkov/todoapp/internal/ports"
)

// Compile-time check that TaskService implements ports.TaskService.
var _ ports.TaskService = (*TaskService)(nil)

// defaultBulkWorkers bounds concurrency for bulk status changes.
const defaultBulkWorkers = 5

// TaskService implements ports.TaskService. Task mutations require
// full access to the owning list; reads require at least a read-only share.
type TaskService struct {
	tasks       ports.TaskRepository
	comments    ports.CommentRepository
	tags        ports.TagRepository
	shares      ports.ShareRepository
	uow         ports.UnitOfWork
	logger      *slog.Logger
	bulkWorkers int
}

// NewTaskService creates a TaskService.
func NewTaskService(
	tasks ports.TaskRepository,
	comments ports.CommentRepository,
	tags ports.TagRepository,
	shares ports.ShareRepository,
	uow ports.UnitOfWork,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		tasks:       tasks,
		comments:    comments,
		tags:        tags,
		shares:      shares,
		uow:         uow,
		logger:      logger,
		bulkWorkers: defaultBulkWorkers,
	}
}

// GetTask returns a task with its comments and tags populated.
func (s *TaskService) GetTask(ctx context.Context, actorID, taskID uuid.UUID) (*task.Task, error) {
	s.logger.InfoContext(ctx, "fetching task", slog.String("task_id", taskID.String()))

	return s.loadTask(ctx, "GetTask", taskID, actorID, list.PermissionReadOnly)
}

// Tasks returns one page of tasks matching the request's filters.
func (s *TaskService) Tasks(ctx context.Context, actorID uuid.UUID, req task.Request) (*pagination.Result[*task.Task], error) {
	s.logger.InfoContext(ctx, "listing tasks", slog.String("user_id", actorID.String()))

	if req.TodoListID != nil {
		if err := s.requireAccess(ctx, *req.TodoListID, actorID, list.PermissionReadOnly); err != nil {
			return nil, err
		}
	} else {
		// Without a list filter, scope the query to lists the actor can see.
		req.UserID = &actorID
	}

	result, err := s.tasks.GetTasks(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tasks",
			slog.String("operation", "Tasks"),
			slog.String("user_id", actorID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return result, nil
}

// UpdateTask applies the non-nil fields of the update to the task.
func (s *TaskService) UpdateTask(ctx context.Context, actorID, taskID uuid.UUID, update ports.TaskUpdate) (*task.Task, error) {
	s.logger.InfoContext(ctx, "updating task", slog.String("task_id", taskID.String()))

	t, err := s.loadTask(ctx, "UpdateTask", taskID, actorID, list.PermissionFullAccess)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title, err := domain.NewTaskTitle(*update.Title)
		if err != nil {
			return nil, err
		}
		t.UpdateTitle(title, actorID)
	}
	if update.Description != nil {
		desc, err := domain.NewTaskDescription(*update.Description)
		if err != nil {
			return nil, err
		}
		t.UpdateDescription(desc, actorID)
	}

	return s.storeTask(ctx, "UpdateTask", t)
}

// ChangeStatus moves the task through its status state machine.
func (s *TaskService) ChangeStatus(ctx context.Context, actorID, taskID uuid.UUID, status task.Status) (*task.Task, error) {
	s.logger.InfoContext(ctx, "changing task status",
		slog.String("task_id", taskID.String()),
		slog.String("status", status.String()),
	)

	t, err := s.loadTask(ctx, "ChangeStatus", taskID, actorID, list.PermissionFullAccess)
	if err != nil {
		return nil, err
	}
	if err := t.ChangeStatus(status, actorID); err != nil {
		return nil, err
	}
	return s.storeTask(ctx, "ChangeStatus", t)
}

// SetPriority replaces the task's priority.
func (s *TaskService) SetPriority(ctx context.Context, actorID, taskID uuid.UUID, priority task.Priority) (*task.Task, error) {
	s.logger.InfoContext(ctx, "setting task priority",
		slog.String("task_id", taskID.String()),
		slog.String("priority", priority.String()),
	)

	t, err := s.loadTask(ctx, "SetPriority", taskID, actorID, list.PermissionFullAccess)
	if err != nil {
		return nil, err
	}
	if err := t.SetPriority(priority, actorID); err != nil {
		return nil, err
	}
	return s.storeTask(ctx, "SetPriority", t)
}

// SetDueDate sets or replaces the task's due date.
func (s *TaskService) SetDueDate(ctx context.Context, actorID, taskID uuid.UUID, dueDate time.Time) (*task.Task, error) {
	s.logger.InfoContext(ctx, "setting task due date", slog.String("task_id", taskID.String()))

	t, err := s.loadTask(ctx, "SetDueDate", taskID, actorID, list.PermissionFullAccess)
	if err != nil {
		return nil, err
	}
	t.SetDueDate(dueDate, actorID)
	return s.storeTask(ctx, "SetDueDate", t)
}

// ClearDueDate removes the task's due date.
func (s *TaskService) ClearDueDate(ctx context.Context, actorID, taskID uuid.UUID) (*task.Task, error) {
	s.logger.InfoContext(ctx, "clearing task due date", slog.String("task_id", taskID.String()))

	t, err := s.loadTask(ctx, "ClearDueDate", taskID, actorID, list.PermissionFullAccess)
	if err != nil {
		return nil, err
	}
	t.ClearDueDate(actorID)
	return s.storeTask(ctx, "ClearDueDate", t)
}

// Assign assigns the task to a user, or unassigns it when assignee is nil.
func (s *TaskService) Assign(ctx context.Context, actorID, taskID uuid.UUID, assignee *uuid.UUID) (*task.Task, error) {
	s.logger.InfoContext(ctx, "assigning task", slog.String("task_id", taskID.String()))

	t, err := s.loadTask(ctx, "Assign", taskID, actorID, list.PermissionFullAccess)
	if err != nil {
		return nil, err
	}
	t.AssignTo(assignee, actorID)
	return s.storeTask(ctx, "Assign", t)
}

// AddComment attaches a comment authored by the acting user.
func (s *TaskService) AddComment(ctx context.Context, actorID, taskID uuid.UUID, content string) (*task.Comment, error) {
	s.logger.InfoContext(ctx, "adding comment", slog.String("task_id", taskID.String()))

	t, err := s.loadTask(ctx, "AddComment", taskID, actorID, list.PermissionFullAccess)
	if err != nil {
		return nil, err
	}

	c, err := task.NewComment(taskID, actorID, content)
	if err != nil {
		return nil, err
	}
	if err := t.AddComment(c); err != nil {
		return nil, err
	}

	if _, err := s.comments.Add(ctx, c); err != nil {
		return nil, fmt.Errorf("storing comment: %w", err)
	}
	if _, err := s.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("storing task: %w", err)
	}
	if err := s.commit(ctx, "AddComment"); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateComment replaces a comment's content. Author only.
func (s *TaskService) UpdateComment(ctx context.Context, actorID, commentID uuid.UUID, content string) (*task.Comment, error) {
	s.logger.InfoContext(ctx, "updating comment", slog.String("comment_id", commentID.String()))

	c, err := s.loadAuthoredComment(ctx, commentID, actorID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateContent(content, actorID); err != nil {
		return nil, err
	}

	if _, err := s.comments.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("storing comment: %w", err)
	}
	if err := s.commit(ctx, "UpdateComment"); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteComment removes a comment. Author only.
func (s *TaskService) DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error {
	s.logger.InfoContext(ctx, "deleting comment", slog.String("comment_id", commentID.String()))

	c, err := s.loadAuthoredComment(ctx, commentID, actorID)
	if err != nil {
		return err
	}

	t, err := s.tasks.GetByID(ctx, c.TodoTaskID)
	if err != nil {
		return fmt.Errorf("fetching task: %w", err)
	}
	if t != nil && t.RemoveComment(commentID) {
		if _, err := s.tasks.Update(ctx, t); err != nil {
			return fmt.Errorf("storing task: %w", err)
		}
	}

	if _, err := s.comments.Delete(ctx, c); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return s.commit(ctx, "DeleteComment")
}

// Comments returns one page of a task's comments.
func (s *TaskService) Comments(ctx context.Context, actorID uuid.UUID, req task.CommentRequest) (*pagination.Result[*task.Comment], error) {
	s.logger.InfoContext(ctx, "listing comments", slog.String("task_id", req.TodoTaskID.String()))

	if _, err := s.loadTask(ctx, "Comments", req.TodoTaskID, actorID, list.PermissionReadOnly); err != nil {
		return nil, err
	}

	result, err := s.comments.GetComments(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list comments",
			slog.String("operation", "Comments"),
			slog.String("task_id", req.TodoTaskID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return result, nil
}

// TagTask attaches one of the acting user's tags to the task.
func (s *TaskService) TagTask(ctx context.Context, actorID, taskID, tagID uuid.UUID) error {
	s.logger.InfoContext(ctx, "tagging task",
		slog.String("task_id", taskID.String()),
		slog.String("tag_id", tagID.String()),
	)

	t, err := s.loadTask(ctx, "TagTask", taskID, actorID, list.PermissionFullAccess)
	if err != nil {
		return err
	}

	tg, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return fmt.Errorf("fetching tag: %w", err)
	}
	// Tags are scoped to their owner; another user's tag is reported as
	// missing rather than forbidden.
	if tg == nil || tg.OwnerID != actorID {
		return domain.NewNotFoundError("Tag", tagID)
	}

	if err := t.AddTag(tg, actorID); err != nil {
		return err
	}
	if _, err := s.storeTask(ctx, "TagTask", t); err != nil {
		return err
	}
	return nil
}

// UntagTask detaches a tag from the task.
func (s *TaskService) UntagTask(ctx context.Context, actorID, taskID, tagID uuid.UUID) error {
	s.logger.InfoContext(ctx, "untagging task",
		slog.String("task_id", taskID.String()),
		slog.String("tag_id", tagID.String()),
	)

	t, err := s.loadTask(ctx, "UntagTask", taskID, actorID, list.PermissionFullAccess)
	if err != nil {
		return err
	}
	if !t.RemoveTag(tagID, actorID) {
		return domain.NewNotFoundError("Tag", tagID)
	}
	if _, err := s.storeTask(ctx, "UntagTask", t); err != nil {
		return err
	}
	return nil
}

// BulkChangeStatus applies status changes to multiple tasks concurrently
// using partial success semantics: per-item failures land in the result's
// Errors, not in the returned error.
func (s *TaskService) BulkChangeStatus(ctx context.Context, actorID uuid.UUID, changes []ports.StatusChange) (*ports.BulkStatusResult, error) {
	s.logger.InfoContext(ctx, "bulk changing task status", slog.Int("count", len(changes)))

	results := fanout.Run(ctx, s.bulkWorkers, changes,
		func(ctx context.Context, change ports.StatusChange) (*task.Task, error) {
			return s.ChangeStatus(ctx, actorID, change.TaskID, change.Status)
		})

	out := &ports.BulkStatusResult{}
	for i, r := range results {
		if r.Err != nil {
			out.Errors = append(out.Errors, ports.BulkStatusError{
				TaskID: changes[i].TaskID,
				Err:    r.Err,
			})
			continue
		}
		out.Updated = append(out.Updated, r.Value)
	}

	if len(out.Errors) > 0 {
		s.logger.WarnContext(ctx, "bulk status change completed with failures",
			slog.String("operation", "BulkChangeStatus"),
			slog.Int("updated", len(out.Updated)),
			slog.Int("failed", len(out.Errors)),
		)
	}
	return out, nil
}

// loadTask fetches a task and checks the actor's access to its list.
func (s *TaskService) loadTask(ctx context.Context, operation string, taskID, actorID uuid.UUID, required list.Permission) (*task.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch task",
			slog.String("operation", operation),
			slog.String("task_id", taskID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetching task: %w", err)
	}
	if t == nil {
		return nil, domain.NewNotFoundError("TodoTask", taskID)
	}
	if err := s.requireAccess(ctx, t.TodoListID(), actorID, required); err != nil {
		return nil, err
	}
	return t, nil
}

// loadAuthoredComment fetches a comment and verifies the actor wrote it.
func (s *TaskService) loadAuthoredComment(ctx context.Context, commentID, actorID uuid.UUID) (*task.Comment, error) {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("fetching comment: %w", err)
	}
	if c == nil {
		return nil, domain.NewNotFoundError("Comment", commentID)
	}
	if c.AuthorID != actorID {
		t, err := s.tasks.GetByID(ctx, c.TodoTaskID)
		if err != nil {
			return nil, fmt.Errorf("fetching task: %w", err)
		}
		var listID uuid.UUID
		if t != nil {
			listID = t.TodoListID()
		}
		return nil, &domain.AccessDeniedError{TodoListID: listID, UserID: actorID}
	}
	return c, nil
}

func (s *TaskService) requireAccess(ctx context.Context, listID, actorID uuid.UUID, required list.Permission) error {
	ok, err := s.shares.HasAccess(ctx, listID, actorID, required)
	if err != nil {
		return fmt.Errorf("checking access: %w", err)
	}
	if !ok {
		return &domain.AccessDeniedError{TodoListID: listID, UserID: actorID}
	}
	return nil
}

// storeTask stages the updated task and commits.
func (s *TaskService) storeTask(ctx context.Context, operation string, t *task.Task) (*task.Task, error) {
	if _, err := s.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("storing task: %w", err)
	}
	if err := s.commit(ctx, operation); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) commit(ctx context.Context, operation string) error {
	if _, err := s.uow.SaveChanges(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to commit changes",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return fmt.Errorf("saving changes: %w", err)
	}
	return nil
}
