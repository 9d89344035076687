// Package memory is an in-process store backend used for development and
// tests. It mirrors the persistent backends' semantics, including id and
// timestamp assignment.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"neonspend/internal/core"
	"neonspend/internal/store"
)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
	// clock is overridable so tests can pin creation timestamps.
	clock func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{clock: time.Now}
}

// NewWithClock builds a store with a fixed clock for tests.
func NewWithClock(clock func() time.Time) *Store {
	return &Store{clock: clock}
}

func (s *Store) CreateExpense(_ context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()
	e.CreatedAt = s.clock().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return e, nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest created first. Items append in creation order, so walk backwards.
	out := make([]core.Expense, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out, nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return e, nil
		}
	}
	return core.Expense{}, store.ErrNotFound
}

func (s *Store) DeleteAllExpenses(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

func (s *Store) Close() error { return nil }
