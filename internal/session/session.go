// Package session models the in-memory collection a dashboard session works
// against. State is an explicitly owned container: update functions return a
// new State and callers re-render from a Snapshot, so no shared mutable
// state leaks between owners.
package session

import (
	"time"

	"neonspend/internal/core"
	"neonspend/internal/report"
)

const recentLimit = 6

type (
	// Theme is the display mode. It is a presentation setting only and has
	// no effect on data.
	Theme string

	// State is an immutable view over a session's expense collection plus
	// the active filter and display settings.
	State struct {
		items  []core.Expense
		filter report.Filter
		theme  Theme
	}

	// Snapshot carries every derived value the presentation renders. It is
	// recomputed in full after each state change.
	Snapshot struct {
		Recent     []core.Expense         `json:"recent"`
		Filtered   []core.Expense         `json:"filtered"`
		Summary    report.Summary         `json:"summary"`
		ByCategory []report.CategoryTotal `json:"byCategory"`
		ByMonth    []report.MonthlyTotal  `json:"byMonth"`
		Theme      Theme                  `json:"theme"`
	}

	// Sink consumes snapshots. Implementations render tables and charts
	// from the plain aggregate values without reaching back into State.
	Sink interface {
		Render(Snapshot) error
	}
)

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// New builds a session state over a copy of the given records.
func New(items []core.Expense) State {
	return State{
		items: append([]core.Expense(nil), items...),
		theme: ThemeDark,
	}
}

// Items returns a copy of the collection.
func (s State) Items() []core.Expense {
	return append([]core.Expense(nil), s.items...)
}

// Len returns the number of records in the collection.
func (s State) Len() int {
	return len(s.items)
}

// Add returns a new state with the expense appended.
func (s State) Add(e core.Expense) State {
	next := s
	next.items = append(s.Items(), e)
	return next
}

// Remove returns a new state without the record of the given id. Removing
// an unknown id leaves the collection unchanged.
func (s State) Remove(id string) State {
	next := s
	out := make([]core.Expense, 0, len(s.items))
	for _, e := range s.items {
		if e.ID != id {
			out = append(out, e)
		}
	}
	next.items = out
	return next
}

// Clear returns a new state with an empty collection.
func (s State) Clear() State {
	next := s
	next.items = nil
	return next
}

// WithFilter returns a new state with the given filter active.
func (s State) WithFilter(f report.Filter) State {
	next := s
	next.filter = f
	return next
}

// WithTheme returns a new state with the given display mode.
func (s State) WithTheme(t Theme) State {
	next := s
	next.theme = t
	return next
}

// Filter returns the active filter.
func (s State) Filter() report.Filter {
	return s.filter
}

// Snapshot recomputes every aggregate from the full collection.
func (s State) Snapshot() Snapshot {
	return s.SnapshotAt(time.Now())
}

// SnapshotAt is Snapshot with an explicit reference time.
func (s State) SnapshotAt(now time.Time) Snapshot {
	filtered := report.ByDateDesc(report.Apply(s.items, s.filter))
	return Snapshot{
		Recent:     report.RecentFirst(s.items, recentLimit),
		Filtered:   filtered,
		Summary:    report.SummarizeAt(s.items, now),
		ByCategory: report.CategoryTotals(s.items),
		ByMonth:    report.MonthlyTotals(s.items),
		Theme:      s.theme,
	}
}

// RenderTo recomputes the snapshot and hands it to the sink.
func (s State) RenderTo(sink Sink) error {
	return sink.Render(s.Snapshot())
}
