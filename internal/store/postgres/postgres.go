// Package postgres is the shared-database store backend, for deployments
// where several instances point at one collection.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"neonspend/internal/core"
	"neonspend/internal/store"
)

type Repository struct {
	db *pgxpool.Pool
}

var _ store.Store = (*Repository)(nil)

func New(ctx context.Context, url string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	r := &Repository{db: pool}
	if err := r.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) ensureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			amount NUMERIC(14,2) NOT NULL,
			category TEXT NOT NULL DEFAULT 'other',
			"date" DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	r.db.Close()
	return nil
}

func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO expenses (id, title, amount, category, "date", created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Title, e.Amount.Display(), string(e.Category), e.Date.Time, e.CreatedAt,
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	return e, nil
}

func (r *Repository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, amount::text, category, "date", created_at
		   FROM expenses
		  ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteExpense(ctx context.Context, id string) (core.Expense, error) {
	row := r.db.QueryRow(ctx,
		`DELETE FROM expenses WHERE id = $1
		 RETURNING id, title, amount::text, category, "date", created_at`, id)
	e, err := scanExpense(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Expense{}, store.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func (r *Repository) DeleteAllExpenses(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("delete all expenses: %w", err)
	}
	return nil
}

func scanExpense(scan func(dest ...any) error) (core.Expense, error) {
	var (
		e        core.Expense
		amount   string
		category string
		date     time.Time
	)
	if err := scan(&e.ID, &e.Title, &amount, &category, &date, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.Expense{}, err
		}
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}

	m, err := core.MoneyFromString(amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	e.Amount = m
	e.Category = core.ParseCategory(category)
	e.Date = core.NewDate(date.Year(), int(date.Month()), date.Day())
	return e, nil
}
