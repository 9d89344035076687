package report

import (
	"testing"
	"time"

	"neonspend/internal/core"
)

func expense(title, amount, category, date string) core.Expense {
	m, err := core.MoneyFromString(amount)
	if err != nil {
		panic(err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Expense{
		Title:    title,
		Amount:   m,
		Category: core.ParseCategory(category),
		Date:     d,
	}
}

func TestSummarize(t *testing.T) {
	items := []core.Expense{
		expense("Coffee", "50", "food", "2024-03-01"),
		expense("Bus", "20", "transport", "2024-03-02"),
	}
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	s := SummarizeAt(items, now)
	if s.Total.Display() != "70.00" {
		t.Fatalf("total=%s want 70.00", s.Total.Display())
	}
	if s.Count != 2 {
		t.Fatalf("count=%d want 2", s.Count)
	}
	if s.Average.Display() != "35.00" {
		t.Fatalf("average=%s want 35.00", s.Average.Display())
	}
	if s.ThisMonth.Display() != "70.00" {
		t.Fatalf("thisMonth=%s want 70.00", s.ThisMonth.Display())
	}
	if s.TopCategory != "Food" {
		t.Fatalf("topCategory=%q want Food", s.TopCategory)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 {
		t.Fatalf("count=%d", s.Count)
	}
	if s.Total.Display() != "0.00" || s.Average.Display() != "0.00" {
		t.Fatalf("total=%s average=%s", s.Total.Display(), s.Average.Display())
	}
	if s.TopCategory != NoLeader {
		t.Fatalf("topCategory=%q want %q", s.TopCategory, NoLeader)
	}
}

func TestSummarizeTopCategoryTie(t *testing.T) {
	// Equal totals resolve to the earlier category in the fixed order.
	items := []core.Expense{
		expense("Bus", "10", "transport", "2024-03-01"),
		expense("Lunch", "10", "food", "2024-03-02"),
	}
	s := Summarize(items)
	if s.TopCategory != "Food" {
		t.Fatalf("topCategory=%q want Food", s.TopCategory)
	}
}

func TestSummarizeThisMonthExcludesOtherMonths(t *testing.T) {
	items := []core.Expense{
		expense("Rent", "500", "bills", "2024-02-28"),
		expense("Coffee", "5", "food", "2024-03-01"),
	}
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	s := SummarizeAt(items, now)
	if s.ThisMonth.Display() != "5.00" {
		t.Fatalf("thisMonth=%s want 5.00", s.ThisMonth.Display())
	}
	if s.Total.Display() != "505.00" {
		t.Fatalf("total=%s want 505.00", s.Total.Display())
	}
}

func TestCategoryTotals(t *testing.T) {
	items := []core.Expense{
		expense("Coffee", "50", "food", "2024-03-01"),
		expense("Bus", "20", "transport", "2024-03-02"),
		expense("Lunch", "30", "food", "2024-03-03"),
	}
	totals := CategoryTotals(items)
	if len(totals) != len(core.Categories()) {
		t.Fatalf("len=%d want %d", len(totals), len(core.Categories()))
	}

	byCat := make(map[core.Category]string, len(totals))
	for _, ct := range totals {
		byCat[ct.Category] = ct.Total.Display()
	}
	if byCat[core.CategoryFood] != "80.00" {
		t.Fatalf("food=%s want 80.00", byCat[core.CategoryFood])
	}
	if byCat[core.CategoryTransport] != "20.00" {
		t.Fatalf("transport=%s want 20.00", byCat[core.CategoryTransport])
	}
	if byCat[core.CategoryBills] != "0.00" {
		t.Fatalf("bills=%s want 0.00", byCat[core.CategoryBills])
	}

	// Category totals partition the grand total.
	sum := core.Money{}
	for _, ct := range totals {
		sum = sum.Add(ct.Total)
	}
	if sum.Display() != Summarize(items).Total.Display() {
		t.Fatalf("partition broken: %s != %s", sum.Display(), Summarize(items).Total.Display())
	}
}

func TestMonthlyTotals(t *testing.T) {
	items := []core.Expense{
		expense("March", "10", "food", "2024-03-05"),
		expense("January", "30", "food", "2024-01-10"),
		expense("March again", "5", "bills", "2024-03-20"),
	}
	totals := MonthlyTotals(items)
	if len(totals) != 2 {
		t.Fatalf("len=%d want 2", len(totals))
	}
	if totals[0].Key != "2024-01" || totals[1].Key != "2024-03" {
		t.Fatalf("keys not ascending: %s, %s", totals[0].Key, totals[1].Key)
	}
	if totals[0].Label != "Jan 24" {
		t.Fatalf("label=%q", totals[0].Label)
	}
	if totals[1].Total.Display() != "15.00" {
		t.Fatalf("march total=%s want 15.00", totals[1].Total.Display())
	}
}

func TestFilterMatch(t *testing.T) {
	items := []core.Expense{
		expense("Coffee", "50", "food", "2024-03-01"),
		expense("Bus ticket", "20", "transport", "2024-03-02"),
		expense("Movie", "15", "entertainment", "2024-04-01"),
	}

	cases := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"empty matches all", Filter{}, 3},
		{"category all matches all", Filter{Category: CategoryAll}, 3},
		{"search substring case-insensitive", Filter{Search: "cof"}, 1},
		{"search no match", Filter{Search: "pizza"}, 0},
		{"category", Filter{Category: "transport"}, 1},
		{"from inclusive", Filter{From: core.NewDate(2024, 3, 2)}, 2},
		{"to inclusive", Filter{To: core.NewDate(2024, 3, 2)}, 2},
		{"range", Filter{From: core.NewDate(2024, 3, 1), To: core.NewDate(2024, 3, 31)}, 2},
		{"combined", Filter{Search: "bus", Category: "transport", From: core.NewDate(2024, 3, 1)}, 1},
		{"combined mismatch", Filter{Search: "bus", Category: "food"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(Apply(items, tc.filter)); got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	items := []core.Expense{
		expense("Coffee", "50", "food", "2024-03-01"),
		expense("Bus", "20", "transport", "2024-03-02"),
	}
	f := Filter{Category: "food"}
	once := Apply(items, f)
	twice := Apply(once, f)
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d != %d", len(once), len(twice))
	}
}

func TestByDateDesc(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	a := expense("First", "1", "food", "2024-03-01")
	a.CreatedAt = base
	b := expense("Second", "1", "food", "2024-03-01")
	b.CreatedAt = base.Add(time.Minute)
	c := expense("Older day", "1", "food", "2024-02-01")
	c.CreatedAt = base.Add(time.Hour)

	out := ByDateDesc([]core.Expense{a, c, b})
	if out[0].Title != "Second" || out[1].Title != "First" || out[2].Title != "Older day" {
		t.Fatalf("order: %s, %s, %s", out[0].Title, out[1].Title, out[2].Title)
	}
}

func TestRecentFirst(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var items []core.Expense
	for i := 0; i < 8; i++ {
		e := expense("item", "1", "food", "2024-03-01")
		e.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		items = append(items, e)
	}
	out := RecentFirst(items, 6)
	if len(out) != 6 {
		t.Fatalf("len=%d want 6", len(out))
	}
	if !out[0].CreatedAt.After(out[5].CreatedAt) {
		t.Fatalf("not newest first")
	}
}
