package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"neonspend/internal/core"
	"neonspend/internal/report"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends the uniform error envelope with a fixed, non-leaking
// message; detail stays in the logs.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseFilter reads the filter controls from query parameters: q (title
// search), category ("all" or one of the fixed set), from, to (inclusive
// ISO dates).
func parseFilter(r *http.Request) (report.Filter, error) {
	q := r.URL.Query()
	f := report.Filter{
		Search:   strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return report.Filter{}, fmt.Errorf("invalid from date")
		}
		f.From = d
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return report.Filter{}, fmt.Errorf("invalid to date")
		}
		f.To = d
	}
	return f, nil
}

// filterKey builds the cache key for a filter in canonical form.
func filterKey(f report.Filter) string {
	from, to := "", ""
	if !f.From.IsZero() {
		from = f.From.String()
	}
	if !f.To.IsZero() {
		to = f.To.String()
	}
	return strings.ToLower(f.Search) + "|" + f.Category + "|" + from + "|" + to
}
