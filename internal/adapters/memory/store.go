// Package memory provides in-memory implementations of the persistence
// ports. A single Store guards all aggregates behind one RWMutex; the
// UnitOfWork stages writes and applies them under the store lock in a single
// commit. Intended for development, testing, and as the reference adapter
// for the repository contracts.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain/list"
	"github.com/avoronkov/todoapp/internal/domain/tag"
	"github.com/avoronkov/todoapp/internal/domain/task"
)

// Store is the shared in-memory backing for all repositories.
type Store struct {
	mu       sync.RWMutex
	lists    map[uuid.UUID]*list.TodoList
	tasks    map[uuid.UUID]*task.Task
	comments map[uuid.UUID]*task.Comment
	tags     map[uuid.UUID]*tag.Tag
	shares   map[uuid.UUID]*list.Share
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		lists:    make(map[uuid.UUID]*list.TodoList),
		tasks:    make(map[uuid.UUID]*task.Task),
		comments: make(map[uuid.UUID]*task.Comment),
		tags:     make(map[uuid.UUID]*tag.Tag),
		shares:   make(map[uuid.UUID]*list.Share),
	}
}

// hasAccess reports whether the user may act on the list at the required
// level, through ownership or a share grant. Caller must hold the lock.
func (s *Store) hasAccess(listID, userID uuid.UUID, required list.Permission) bool {
	l, ok := s.lists[listID]
	if !ok {
		return false
	}
	if l.OwnerID == userID {
		return true
	}
	for _, sh := range s.shares {
		if sh.TodoListID == listID && sh.UserID == userID {
			return sh.Permission().Satisfies(required)
		}
	}
	return false
}

// visibleListIDs returns the ids of lists the user owns or has a share on.
// Caller must hold the lock.
func (s *Store) visibleListIDs(userID uuid.UUID) map[uuid.UUID]bool {
	visible := make(map[uuid.UUID]bool)
	for id, l := range s.lists {
		if l.OwnerID == userID {
			visible[id] = true
		}
	}
	for _, sh := range s.shares {
		if sh.UserID == userID {
			visible[sh.TodoListID] = true
		}
	}
	return visible
}

// removeListCascade deletes a list with its tasks, their comments, and its
// shares, returning the number of removed entities. Caller must hold the
// lock.
func (s *Store) removeListCascade(listID uuid.UUID) int {
	if _, ok := s.lists[listID]; !ok {
		return 0
	}
	affected := 1
	delete(s.lists, listID)

	for id, t := range s.tasks {
		if t.TodoListID() == listID {
			affected += 1 + s.removeTaskComments(id)
			delete(s.tasks, id)
		}
	}
	for id, sh := range s.shares {
		if sh.TodoListID == listID {
			delete(s.shares, id)
			affected++
		}
	}
	return affected
}

// removeTaskComments deletes all comments on a task, returning the count.
// Caller must hold the lock.
func (s *Store) removeTaskComments(taskID uuid.UUID) int {
	removed := 0
	for id, c := range s.comments {
		if c.TodoTaskID == taskID {
			delete(s.comments, id)
			removed++
		}
	}
	return removed
}

// detachTag removes a tag from every task it is attached to, returning the
// number of detachments. Caller must hold the lock.
func (s *Store) detachTag(tagID uuid.UUID) int {
	detached := 0
	for _, t := range s.tasks {
		for _, tg := range t.Tags() {
			if tg.ID == tagID {
				t.RemoveTag(tagID, tg.OwnerID)
				detached++
				break
			}
		}
	}
	return detached
}
