package memory

import (
	"context"
	"sync"

	"github.com/avoronkov/todoapp/internal/ports"
)

// Compile-time check that UnitOfWork implements ports.UnitOfWork.
var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork collects staged write operations from the repositories and
// applies them under the store lock in a single commit. Staging is safe for
// concurrent use.
type UnitOfWork struct {
	store *Store

	mu     sync.Mutex
	staged []func(*Store) int
}

// NewUnitOfWork creates a unit of work over the given store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// stage enqueues an operation. fn runs with the store lock held and returns
// the number of entities it affected.
func (u *UnitOfWork) stage(fn func(*Store) int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.staged = append(u.staged, fn)
}

// SaveChanges applies all staged operations in staging order and returns
// the number of affected entities.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	u.mu.Lock()
	staged := u.staged
	u.staged = nil
	u.mu.Unlock()

	if len(staged) == 0 {
		return 0, nil
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	affected := 0
	for _, fn := range staged {
		affected += fn(u.store)
	}
	return affected, nil
}

// Close discards any staged operations.
func (u *UnitOfWork) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.staged = nil
	return nil
}
