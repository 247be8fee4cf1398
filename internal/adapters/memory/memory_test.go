package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronkov/todoapp/internal/domain"
	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/pagination"
	"github.com/avoronkov/todoapp/internal/domain/tag"
	"github.com/avoronkov/todoapp/internal/domain/task"
)

type fixture struct {
	store    *Store
	uow      *UnitOfWork
	lists    *ListRepository
	tasks    *TaskRepository
	comments *CommentRepository
	tags     *TagRepository
	shares   *ShareRepository
}

func newFixture() *fixture {
	store := NewStore()
	uow := NewUnitOfWork(store)
	return &fixture{
		store:    store,
		uow:      uow,
		lists:    NewListRepository(store, uow),
		tasks:    NewTaskRepository(store, uow),
		comments: NewCommentRepository(store, uow),
		tags:     NewTagRepository(store, uow),
		shares:   NewShareRepository(store, uow),
	}
}

func makeList(t *testing.T, owner uuid.UUID, title string) *list.TodoList {
	t.Helper()
	tt, err := domain.NewTitle(title)
	require.NoError(t, err)
	l := list.New(owner, tt, domain.Description{})
	l.ClearDomainEvents()
	return l
}

func makeTask(t *testing.T, listID uuid.UUID, title string) *task.Task {
	t.Helper()
	tt, err := domain.NewTaskTitle(title)
	require.NoError(t, err)
	tk, err := task.New(listID, uuid.New(), tt, domain.Description{}, task.PriorityMedium, nil)
	require.NoError(t, err)
	return tk
}

func TestUnitOfWork_StagedWritesAreInvisibleUntilCommit(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	l := makeList(t, uuid.New(), "Groceries")

	_, err := f.lists.Add(ctx, l)
	require.NoError(t, err)

	got, err := f.lists.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "staged add must not be visible before commit")

	affected, err := f.uow.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	got, err = f.lists.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Same(t, l, got)
}

func TestUnitOfWork_CountsAllStagedOperations(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()

	l := makeList(t, owner, "Groceries")
	_, err := f.lists.Add(ctx, l)
	require.NoError(t, err)

	tk := makeTask(t, l.ID, "Buy milk")
	_, err = f.tasks.Add(ctx, tk)
	require.NoError(t, err)

	affected, err := f.uow.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, affected)

	// Nothing left staged.
	affected, err = f.uow.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, affected)
}

func TestUnitOfWork_CloseDiscardsStagedWrites(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	l := makeList(t, uuid.New(), "Groceries")

	_, err := f.lists.Add(ctx, l)
	require.NoError(t, err)
	require.NoError(t, f.uow.Close())

	affected, err := f.uow.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, affected)
}

func TestListRepository_DeleteCascades(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()

	l := makeList(t, owner, "Groceries")
	tk := makeTask(t, l.ID, "Buy milk")
	c, err := task.NewComment(tk.ID, owner, "today please")
	require.NoError(t, err)
	share, err := l.ShareWith(uuid.New(), list.PermissionReadOnly, owner)
	require.NoError(t, err)

	_, err = f.lists.Add(ctx, l)
	require.NoError(t, err)
	_, err = f.tasks.Add(ctx, tk)
	require.NoError(t, err)
	_, err = f.comments.Add(ctx, c)
	require.NoError(t, err)
	_, err = f.shares.Add(ctx, share)
	require.NoError(t, err)
	_, err = f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	_, err = f.lists.Delete(ctx, l)
	require.NoError(t, err)
	affected, err := f.uow.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, affected, "list, task, comment, and share removed")

	for name, exists := range map[string]func() (bool, error){
		"list":    func() (bool, error) { return f.lists.Exists(ctx, l.ID) },
		"task":    func() (bool, error) { return f.tasks.Exists(ctx, tk.ID) },
		"comment": func() (bool, error) { return f.comments.Exists(ctx, c.ID) },
		"share":   func() (bool, error) { return f.shares.Exists(ctx, share.ID) },
	} {
		ok, err := exists()
		require.NoError(t, err)
		assert.False(t, ok, "%s should be gone", name)
	}
}

func TestListRepository_AddConflictAndUpdateMissing(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	l := makeList(t, uuid.New(), "Groceries")

	_, err := f.lists.Add(ctx, l)
	require.NoError(t, err)
	_, err = f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	_, err = f.lists.Add(ctx, l)
	assert.ErrorIs(t, err, domain.ErrConflict)

	other := makeList(t, uuid.New(), "Other")
	_, err = f.lists.Update(ctx, other)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListRepository_GetLists_Visibility(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()
	viewer := uuid.New()

	owned := makeList(t, owner, "Mine")
	shared := makeList(t, uuid.New(), "Theirs")
	hidden := makeList(t, uuid.New(), "Hidden")
	grant, err := shared.ShareWith(owner, list.PermissionReadOnly, shared.OwnerID)
	require.NoError(t, err)

	for _, l := range []*list.TodoList{owned, shared, hidden} {
		_, err := f.lists.Add(ctx, l)
		require.NoError(t, err)
	}
	_, err = f.shares.Add(ctx, grant)
	require.NoError(t, err)
	_, err = f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	res, err := f.lists.GetLists(ctx, list.Request{UserID: owner})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount(), "owned and shared lists visible")

	res, err = f.lists.GetLists(ctx, list.Request{UserID: owner, OwnedOnly: true})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount())
	assert.Equal(t, owned.ID, res.Items()[0].ID)

	res, err = f.lists.GetLists(ctx, list.Request{UserID: viewer})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalCount())
}

func TestListRepository_GetLists_SearchAndSort(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()

	for _, title := range []string{"Beta plan", "Alpha plan", "Chores"} {
		_, err := f.lists.Add(ctx, makeList(t, owner, title))
		require.NoError(t, err)
	}
	_, err := f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	req := list.Request{UserID: owner}
	req.SearchTerm = "plan"
	req.SortBy = "title"
	res, err := f.lists.GetLists(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalCount())
	assert.Equal(t, "Alpha plan", res.Items()[0].Title().Value())
	assert.Equal(t, "Beta plan", res.Items()[1].Title().Value())

	req.SortDirection = pagination.Descending
	res, err = f.lists.GetLists(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Beta plan", res.Items()[0].Title().Value())
}

func TestTaskRepository_GetTasks_Filters(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()
	l := makeList(t, owner, "Work")

	open := makeTask(t, l.ID, "Write report")
	done := makeTask(t, l.ID, "Send invites")
	require.NoError(t, done.ChangeStatus(task.StatusCompleted, owner))

	assignee := uuid.New()
	assigned := makeTask(t, l.ID, "Review budget")
	assigned.AssignTo(&assignee, owner)

	_, err := f.lists.Add(ctx, l)
	require.NoError(t, err)
	for _, tk := range []*task.Task{open, done, assigned} {
		_, err := f.tasks.Add(ctx, tk)
		require.NoError(t, err)
	}
	_, err = f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	status := task.StatusCompleted
	res, err := f.tasks.GetTasks(ctx, task.Request{TodoListID: &l.ID, Status: &status})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount())
	assert.Equal(t, done.ID, res.Items()[0].ID)

	res, err = f.tasks.GetTasks(ctx, task.Request{TodoListID: &l.ID, AssignedUserID: &assignee})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount())
	assert.Equal(t, assigned.ID, res.Items()[0].ID)

	req := task.Request{TodoListID: &l.ID}
	req.SearchTerm = "report"
	res, err = f.tasks.GetTasks(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount())
	assert.Equal(t, open.ID, res.Items()[0].ID)
}

func TestTaskRepository_GetTasks_DueRangeAndVisibility(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()
	outsider := uuid.New()
	l := makeList(t, owner, "Errands")

	soonDue := time.Now().Add(24 * time.Hour)
	lateDue := time.Now().Add(240 * time.Hour)
	soon := makeTask(t, l.ID, "Soon")
	soon.SetDueDate(soonDue, owner)
	late := makeTask(t, l.ID, "Late")
	late.SetDueDate(lateDue, owner)

	_, err := f.lists.Add(ctx, l)
	require.NoError(t, err)
	for _, tk := range []*task.Task{soon, late} {
		_, err := f.tasks.Add(ctx, tk)
		require.NoError(t, err)
	}
	_, err = f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	cutoff := time.Now().Add(48 * time.Hour)
	res, err := f.tasks.GetTasks(ctx, task.Request{UserID: &owner, DueDateTo: &cutoff})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount())
	assert.Equal(t, soon.ID, res.Items()[0].ID)

	res, err = f.tasks.GetTasks(ctx, task.Request{UserID: &outsider})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalCount(), "tasks in invisible lists are filtered out")
}

func TestTagRepository_DeleteDetachesFromTasks(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()
	l := makeList(t, owner, "Home")
	tk := makeTask(t, l.ID, "Fix sink")

	tg, err := tag.New(owner, "plumbing")
	require.NoError(t, err)
	require.NoError(t, tk.AddTag(tg, owner))

	_, err = f.lists.Add(ctx, l)
	require.NoError(t, err)
	_, err = f.tasks.Add(ctx, tk)
	require.NoError(t, err)
	_, err = f.tags.Add(ctx, tg)
	require.NoError(t, err)
	_, err = f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	_, err = f.tags.Delete(ctx, tg)
	require.NoError(t, err)
	_, err = f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	stored, err := f.tasks.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Tags(), "deleted tag should vanish from tasks")
}

func TestTagRepository_GetTags_ExactName(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()

	for _, name := range []string{"home", "work", "homework"} {
		tg, err := tag.New(owner, name)
		require.NoError(t, err)
		_, err = f.tags.Add(ctx, tg)
		require.NoError(t, err)
	}
	_, err := f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	res, err := f.tags.GetTags(ctx, tag.Request{OwnerID: owner, ExactName: "home"})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount())
	assert.Equal(t, "home", res.Items()[0].Name())
}

func TestShareRepository_HasAccess(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()
	reader := uuid.New()
	editor := uuid.New()
	outsider := uuid.New()

	l := makeList(t, owner, "Shared")
	readGrant, err := l.ShareWith(reader, list.PermissionReadOnly, owner)
	require.NoError(t, err)
	writeGrant, err := l.ShareWith(editor, list.PermissionFullAccess, owner)
	require.NoError(t, err)

	_, err = f.lists.Add(ctx, l)
	require.NoError(t, err)
	_, err = f.shares.Add(ctx, readGrant)
	require.NoError(t, err)
	_, err = f.shares.Add(ctx, writeGrant)
	require.NoError(t, err)
	_, err = f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	tests := []struct {
		name     string
		user     uuid.UUID
		required list.Permission
		want     bool
	}{
		{"owner has full access", owner, list.PermissionFullAccess, true},
		{"reader can read", reader, list.PermissionReadOnly, true},
		{"reader cannot write", reader, list.PermissionFullAccess, false},
		{"editor can write", editor, list.PermissionFullAccess, true},
		{"editor can read", editor, list.PermissionReadOnly, true},
		{"outsider has nothing", outsider, list.PermissionReadOnly, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := f.shares.HasAccess(ctx, l.ID, tt.user, tt.required)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := f.shares.HasAccess(ctx, uuid.New(), owner, list.PermissionReadOnly)
	require.NoError(t, err)
	assert.False(t, got, "missing list grants nothing")
}

func TestCommentRepository_GetComments_Paged(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	taskID := uuid.New()
	author := uuid.New()

	for i := 0; i < 15; i++ {
		c, err := task.NewComment(taskID, author, "note")
		require.NoError(t, err)
		_, err = f.comments.Add(ctx, c)
		require.NoError(t, err)
	}
	other, err := task.NewComment(uuid.New(), author, "elsewhere")
	require.NoError(t, err)
	_, err = f.comments.Add(ctx, other)
	require.NoError(t, err)
	_, err = f.uow.SaveChanges(ctx)
	require.NoError(t, err)

	req := task.CommentRequest{TodoTaskID: taskID}
	req.PageNumber = 2
	res, err := f.comments.GetComments(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 15, res.TotalCount())
	assert.Len(t, res.Items(), 5)
	assert.Equal(t, 2, res.TotalPages())
	assert.True(t, res.HasPreviousPage())
	assert.False(t, res.HasNextPage())
}
