package session

import (
	"testing"
	"time"

	"neonspend/internal/core"
	"neonspend/internal/report"
)

func expense(id, title, amount, category, date string, created time.Time) core.Expense {
	m, err := core.MoneyFromString(amount)
	if err != nil {
		panic(err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Expense{
		ID:        id,
		Title:     title,
		Amount:    m,
		Category:  core.ParseCategory(category),
		Date:      d,
		CreatedAt: created,
	}
}

func TestStateUpdatesDoNotMutate(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s := New([]core.Expense{expense("a", "Coffee", "50", "food", "2024-03-01", base)})

	added := s.Add(expense("b", "Bus", "20", "transport", "2024-03-02", base.Add(time.Minute)))
	if s.Len() != 1 {
		t.Fatalf("original mutated by Add: len=%d", s.Len())
	}
	if added.Len() != 2 {
		t.Fatalf("added len=%d want 2", added.Len())
	}

	removed := added.Remove("a")
	if added.Len() != 2 {
		t.Fatalf("original mutated by Remove: len=%d", added.Len())
	}
	if removed.Len() != 1 || removed.Items()[0].ID != "b" {
		t.Fatalf("remove left %v", removed.Items())
	}

	if removed.Remove("missing").Len() != 1 {
		t.Fatalf("removing unknown id changed the collection")
	}

	if added.Clear().Len() != 0 {
		t.Fatalf("clear left records")
	}
}

func TestSnapshot(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var items []core.Expense
	for i := 0; i < 8; i++ {
		items = append(items, expense(string(rune('a'+i)), "item", "10", "food", "2024-03-01", base.Add(time.Duration(i)*time.Minute)))
	}
	s := New(items).WithFilter(report.Filter{Category: "food"})

	snap := s.SnapshotAt(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if len(snap.Recent) != 6 {
		t.Fatalf("recent=%d want 6", len(snap.Recent))
	}
	if snap.Recent[0].ID != "h" {
		t.Fatalf("recent[0]=%s want h", snap.Recent[0].ID)
	}
	if len(snap.Filtered) != 8 {
		t.Fatalf("filtered=%d want 8", len(snap.Filtered))
	}
	if snap.Summary.Total.Display() != "80.00" {
		t.Fatalf("total=%s", snap.Summary.Total.Display())
	}
	if snap.Summary.TopCategory != "Food" {
		t.Fatalf("topCategory=%q", snap.Summary.TopCategory)
	}
	if len(snap.ByCategory) != len(core.Categories()) {
		t.Fatalf("byCategory=%d", len(snap.ByCategory))
	}
	if len(snap.ByMonth) != 1 || snap.ByMonth[0].Key != "2024-03" {
		t.Fatalf("byMonth=%v", snap.ByMonth)
	}
	if snap.Theme != ThemeDark {
		t.Fatalf("theme=%q want dark default", snap.Theme)
	}

	if s.WithTheme(ThemeLight).Snapshot().Theme != ThemeLight {
		t.Fatalf("theme update not reflected")
	}
}

type captureSink struct {
	got *Snapshot
}

func (c *captureSink) Render(s Snapshot) error {
	c.got = &s
	return nil
}

func TestRenderTo(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s := New([]core.Expense{expense("a", "Coffee", "50", "food", "2024-03-01", base)})

	sink := &captureSink{}
	if err := s.RenderTo(sink); err != nil {
		t.Fatalf("render: %v", err)
	}
	if sink.got == nil || sink.got.Summary.Count != 1 {
		t.Fatalf("sink did not receive the snapshot")
	}
}
