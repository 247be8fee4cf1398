package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/domain/tag"
	"github.com/avoronkov/todoapp/internal/domain/task"
)

// Repository is the capability set shared by every persistence port.
// Implemented by outbound adapters; called by the application layer.
// T is instantiated with a pointer to the stored entity type.
type Repository[T any] interface {
	// GetByID returns the entity with the given id, or (nil, nil) when it
	// does not exist. Callers translate absence into domain.NotFoundError.
	GetByID(ctx context.Context, id uuid.UUID) (T, error)

	// GetPaged returns one page of entities in the adapter's natural order.
	GetPaged(ctx context.Context, req pagination.Request) (*pagination.Result[T], error)

	// Add stages an insert and returns the entity's id.
	// Returns domain.ErrConflict if an entity with that id is already staged
	// or stored.
	Add(ctx context.Context, entity T) (uuid.UUID, error)

	// Update stages a replacement of an existing entity and returns its id.
	// Returns domain.ErrNotFound if the entity does not exist.
	Update(ctx context.Context, entity T) (uuid.UUID, error)

	// Delete stages removal of the given entity and returns its id.
	// Returns domain.ErrNotFound if the entity does not exist.
	Delete(ctx context.Context, entity T) (uuid.UUID, error)

	// DeleteByID stages removal by id, reporting whether the entity existed.
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Exists reports whether an entity with the given id is stored.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// TodoListRepository is the persistence port for the list aggregate.
type TodoListRepository interface {
	Repository[*list.TodoList]

	// GetWithTasks returns the list with its tasks (and their comments and
	// tags) populated, or (nil, nil) when the list does not exist.
	GetWithTasks(ctx context.Context, id uuid.UUID) (*list.TodoList, error)

	// GetLists returns one page of lists visible to the requesting user,
	// applying the request's search, filter, and sort criteria.
	GetLists(ctx context.Context, req list.Request) (*pagination.Result[*list.TodoList], error)
}

// TaskRepository is the persistence port for tasks.
type TaskRepository interface {
	Repository[*task.Task]

	// GetTasks returns one page of tasks matching the request's filters
	// (list, status, priority, assignee, due range, overdue-only).
	GetTasks(ctx context.Context, req task.Request) (*pagination.Result[*task.Task], error)
}

// CommentRepository is the persistence port for task comments.
type CommentRepository interface {
	Repository[*task.Comment]

	// GetComments returns one page of comments on a task, optionally
	// narrowed to a single author.
	GetComments(ctx context.Context, req task.CommentRequest) (*pagination.Result[*task.Comment], error)
}

// TagRepository is the persistence port for tags.
type TagRepository interface {
	Repository[*tag.Tag]

	// GetTags returns one page of a user's tags, optionally narrowed to an
	// exact name match.
	GetTags(ctx context.Context, req tag.Request) (*pagination.Result[*tag.Tag], error)
}

// ShareRepository is the persistence port for list shares.
type ShareRepository interface {
	Repository[*list.Share]

	// GetShares returns one page of share records matching the request.
	GetShares(ctx context.Context, req list.ShareRequest) (*pagination.Result[*list.Share], error)

	// HasAccess reports whether the user holds at least the required
	// permission on the list, through ownership or a share grant.
	HasAccess(ctx context.Context, listID, userID uuid.UUID, required list.Permission) (bool, error)
}

// UnitOfWork coordinates staged repository writes into a single commit.
type UnitOfWork interface {
	// SaveChanges applies all staged operations in the order they were
	// staged and returns the number of affected entities. A failed commit
	// leaves the store untouched.
	SaveChanges(ctx context.Context) (int, error)

	// Close discards any staged operations and releases resources.
	Close() error
}

// EventPublisher delivers domain events raised by aggregates after a
// successful commit. Implemented by outbound adapters.
type EventPublisher interface {
	// Publish delivers the given events. Delivery is best effort; callers
	// log failures rather than rolling back the committed change.
	Publish(ctx context.Context, events []domain.Event) error
}
