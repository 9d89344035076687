package worker

import (
	"context"
	"errors"
	"testing"

	"neonspend/internal/core"
	"neonspend/internal/events"
)

type fakeMirror struct {
	appended []string
	deleted  []string
	cleared  int
	err      error
}

func (f *fakeMirror) AppendExpense(ctx context.Context, e core.Expense) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, e.ID)
	return nil
}

func (f *fakeMirror) DeleteExpense(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeMirror) ClearAll(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.cleared++
	return nil
}

func sample(id string) core.Expense {
	m, _ := core.MoneyFromString("10")
	return core.Expense{
		ID:       id,
		Title:    "Coffee",
		Amount:   m,
		Category: core.CategoryFood,
		Date:     core.NewDate(2024, 3, 1),
	}
}

func TestHandleCreated(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewMirrorWorker(mirror)

	if err := w.Handle(context.Background(), events.NewCreated(sample("abc"))); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mirror.appended) != 1 || mirror.appended[0] != "abc" {
		t.Fatalf("appended=%v", mirror.appended)
	}
}

func TestHandleDeleted(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewMirrorWorker(mirror)

	if err := w.Handle(context.Background(), events.NewDeleted(sample("abc"))); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mirror.deleted) != 1 || mirror.deleted[0] != "abc" {
		t.Fatalf("deleted=%v", mirror.deleted)
	}
}

func TestHandleCleared(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewMirrorWorker(mirror)

	if err := w.Handle(context.Background(), events.NewCleared()); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if mirror.cleared != 1 {
		t.Fatalf("cleared=%d", mirror.cleared)
	}
}

func TestHandleMirrorErrorPropagates(t *testing.T) {
	sentinel := errors.New("sheets down")
	w := NewMirrorWorker(&fakeMirror{err: sentinel})

	if err := w.Handle(context.Background(), events.NewCreated(sample("abc"))); !errors.Is(err, sentinel) {
		t.Fatalf("got %v want wrapped sentinel", err)
	}
}

func TestHandleUnknownKindDropped(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewMirrorWorker(mirror)

	msg := &events.Message{Kind: "expense.updated"}
	if err := w.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unknown kind must not requeue: %v", err)
	}
	if len(mirror.appended)+len(mirror.deleted)+mirror.cleared != 0 {
		t.Fatalf("mirror touched for unknown kind")
	}
}

func TestHandleMissingPayload(t *testing.T) {
	w := NewMirrorWorker(&fakeMirror{})
	for _, kind := range []events.Kind{events.ExpenseCreated, events.ExpenseDeleted} {
		if err := w.Handle(context.Background(), &events.Message{Kind: kind}); err == nil {
			t.Fatalf("%s without payload expected error", kind)
		}
	}
}
