// Package report is the aggregation engine: pure functions that derive
// totals, breakdowns, and export payloads from a collection of expenses.
// Every function recomputes from the full input; nothing here caches state.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"neonspend/internal/core"
)

// NoLeader is the sentinel top category when every total is zero.
const NoLeader = "–"

// CategoryAll disables category filtering.
const CategoryAll = "all"

type (
	// Filter selects a subset of expenses. Zero-value fields leave their
	// criterion open.
	Filter struct {
		Search   string
		Category string
		From     core.Date
		To       core.Date
	}

	// CategoryTotal is the spend aggregated for one category.
	CategoryTotal struct {
		Category core.Category `json:"category"`
		Total    core.Money    `json:"total"`
	}

	// MonthlyTotal is the spend aggregated for one calendar year-month.
	MonthlyTotal struct {
		Key   string     `json:"key"`
		Label string     `json:"label"`
		Total core.Money `json:"total"`
	}

	// Summary holds the headline statistics for a collection.
	Summary struct {
		Total       core.Money `json:"total"`
		Count       int        `json:"count"`
		Average     core.Money `json:"average"`
		ThisMonth   core.Money `json:"thisMonth"`
		TopCategory string     `json:"topCategory"`
	}
)

// Match reports whether an expense passes the filter: case-insensitive
// title substring, category equality (or "all"), and an inclusive [from, to]
// range on the parsed calendar date.
func (f Filter) Match(e core.Expense) bool {
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		if !strings.Contains(strings.ToLower(e.Title), s) {
			return false
		}
	}
	if f.Category != "" && f.Category != CategoryAll {
		if string(e.Category) != f.Category {
			return false
		}
	}
	if !f.From.IsZero() && e.Date.Before(f.From.Time) {
		return false
	}
	if !f.To.IsZero() && e.Date.After(f.To.Time) {
		return false
	}
	return true
}

// Apply returns the expenses passing the filter, preserving input order.
func Apply(items []core.Expense, f Filter) []core.Expense {
	out := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// CategoryTotals sums amounts per category in the fixed enumeration order.
// Categories with no matching records report zero.
func CategoryTotals(items []core.Expense) []CategoryTotal {
	sums := make(map[core.Category]decimal.Decimal, len(items))
	for _, e := range items {
		sums[e.Category] = sums[e.Category].Add(e.Amount.Decimal)
	}
	cats := core.Categories()
	out := make([]CategoryTotal, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryTotal{Category: c, Total: core.NewMoney(sums[c])})
	}
	return out
}

// MonthlyTotals sums amounts per calendar year-month, keys ascending.
func MonthlyTotals(items []core.Expense) []MonthlyTotal {
	sums := make(map[string]decimal.Decimal)
	labels := make(map[string]string)
	for _, e := range items {
		key := e.Date.YearMonth()
		sums[key] = sums[key].Add(e.Amount.Decimal)
		labels[key] = e.Date.MonthLabel()
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]MonthlyTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthlyTotal{Key: k, Label: labels[k], Total: core.NewMoney(sums[k])})
	}
	return out
}

// Summarize computes the headline statistics relative to the current month.
func Summarize(items []core.Expense) Summary {
	return SummarizeAt(items, time.Now())
}

// SummarizeAt is Summarize with an explicit reference time for the
// current-month total.
func SummarizeAt(items []core.Expense, now time.Time) Summary {
	total := decimal.Zero
	thisMonth := decimal.Zero
	monthKey := now.Format("2006-01")
	for _, e := range items {
		total = total.Add(e.Amount.Decimal)
		if e.Date.YearMonth() == monthKey {
			thisMonth = thisMonth.Add(e.Amount.Decimal)
		}
	}

	s := Summary{
		Total:       core.NewMoney(total),
		Count:       len(items),
		ThisMonth:   core.NewMoney(thisMonth),
		TopCategory: NoLeader,
	}
	if s.Count > 0 {
		s.Average = core.NewMoney(total.Div(decimal.NewFromInt(int64(s.Count))).Round(2))
	}

	// Ties resolve to the first category in enumeration order.
	max := decimal.Zero
	for _, ct := range CategoryTotals(items) {
		if ct.Total.Decimal.GreaterThan(max) {
			max = ct.Total.Decimal
			s.TopCategory = ct.Category.Display()
		}
	}
	return s
}

// ByDateDesc returns a copy sorted by date descending, newest creation
// first within the same date.
func ByDateDesc(items []core.Expense) []core.Expense {
	out := append([]core.Expense(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// RecentFirst returns a copy of up to n records ordered by creation time
// descending.
func RecentFirst(items []core.Expense, n int) []core.Expense {
	out := append([]core.Expense(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
