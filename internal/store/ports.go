// Package store defines the durable collection ports the HTTP layer and
// worker depend on. Concrete backends live in the subpackages.
package store

import (
	"context"
	"errors"

	"neonspend/internal/core"
)

// ErrNotFound is returned when no record exists for a given id.
var ErrNotFound = errors.New("expense not found")

type (
	// Creator persists a new record, assigning its id and creation
	// timestamp, and returns the completed record.
	Creator interface {
		CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	}

	// Lister returns all records ordered by creation time, newest first.
	Lister interface {
		ListExpenses(ctx context.Context) ([]core.Expense, error)
	}

	// Deleter removes one record by id and returns it, or ErrNotFound.
	Deleter interface {
		DeleteExpense(ctx context.Context, id string) (core.Expense, error)
	}

	// Wiper removes every record unconditionally.
	Wiper interface {
		DeleteAllExpenses(ctx context.Context) error
	}

	// Store is the full collection surface a backend provides.
	Store interface {
		Creator
		Lister
		Deleter
		Wiper
		Close() error
	}
)
