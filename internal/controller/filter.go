package controller

import "strings"

// Filter narrows the visible collection. Zero value matches everything.
type Filter struct {
	// Query matches case-insensitively against the record's search text.
	Query string
	// Status matches the record's status exactly. Empty means any.
	Status string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Query == "" && f.Status == ""
}

// Apply returns the records matching the filter, preserving order. The input
// slice is never mutated.
func Apply[R Record](records []R, f Filter) []R {
	if f.IsZero() {
		out := make([]R, len(records))
		copy(out, records)
		return out
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]R, 0, len(records))
	for _, r := range records {
		if f.Status != "" && r.StatusValue() != f.Status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(r.SearchText()), query) {
			continue
		}
		out = append(out, r)
	}
	return out
}
