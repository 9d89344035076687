// Package worker applies expense mutation events to the Sheets mirror.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"neonspend/internal/core"
	"neonspend/internal/events"
)

// Mirror is the destination the worker keeps in sync with the store.
type Mirror interface {
	AppendExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}

type MirrorWorker struct {
	mirror Mirror
}

func NewMirrorWorker(mirror Mirror) *MirrorWorker {
	return &MirrorWorker{mirror: mirror}
}

// Handle applies one mutation event to the mirror.
func (w *MirrorWorker) Handle(ctx context.Context, msg *events.Message) error {
	switch msg.Kind {
	case events.ExpenseCreated:
		if msg.Expense == nil {
			return fmt.Errorf("created event without expense")
		}
		if err := w.mirror.AppendExpense(ctx, *msg.Expense); err != nil {
			return fmt.Errorf("mirror append: %w", err)
		}
		slog.InfoContext(ctx, "Mirrored created expense", "id", msg.Expense.ID, "title", msg.Expense.Title)
		return nil

	case events.ExpenseDeleted:
		if msg.Expense == nil {
			return fmt.Errorf("deleted event without expense")
		}
		if err := w.mirror.DeleteExpense(ctx, msg.Expense.ID); err != nil {
			return fmt.Errorf("mirror delete: %w", err)
		}
		slog.InfoContext(ctx, "Mirrored deleted expense", "id", msg.Expense.ID)
		return nil

	case events.ExpensesCleared:
		if err := w.mirror.ClearAll(ctx); err != nil {
			return fmt.Errorf("mirror clear: %w", err)
		}
		slog.InfoContext(ctx, "Mirror cleared")
		return nil

	default:
		// Drop unknown kinds instead of requeueing them forever.
		slog.WarnContext(ctx, "Ignoring unknown event kind", "kind", msg.Kind)
		return nil
	}
}
