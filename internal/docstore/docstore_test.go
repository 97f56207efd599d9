package docstore

import (
	"strings"
	"testing"
	"time"
)

func docAt(id string, created time.Time) *Document {
	return &Document{ID: id, Fields: map[string]interface{}{}, CreatedAt: created, UpdatedAt: created}
}

func TestSortAndLimitNewestFirstWithIDTiebreak(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	docs := []*Document{
		docAt("b", base),
		docAt("old", base.Add(-time.Hour)),
		docAt("a", base),
		docAt("new", base.Add(time.Hour)),
	}

	out := sortAndLimit(docs, 0)
	if len(out) != 4 {
		t.Fatalf("limit 0 must return everything, got %d docs", len(out))
	}
	wantOrder := []string{"new", "a", "b", "old"}
	for i, want := range wantOrder {
		if out[i].ID != want {
			t.Fatalf("position %d: want %s, got %s", i, want, out[i].ID)
		}
	}
}

func TestSortAndLimitTruncatesToNewest(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	docs := []*Document{
		docAt("oldest", base.Add(-2*time.Hour)),
		docAt("middle", base.Add(-time.Hour)),
		docAt("newest", base),
	}

	out := sortAndLimit(docs, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(out))
	}
	if out[0].ID != "newest" || out[1].ID != "middle" {
		t.Fatalf("limit must keep the newest docs, got %s, %s", out[0].ID, out[1].ID)
	}
}

func TestListQueryOmitsLimitWhenFetchingEverything(t *testing.T) {
	query, args := listQuery("payouts", 0)
	if strings.Contains(query, "LIMIT") {
		t.Fatalf("limit 0 must not cap the result set, got query: %s", query)
	}
	if len(args) != 1 || args[0] != "payouts" {
		t.Fatalf("expected only the collection arg, got %v", args)
	}

	query, args = listQuery("payouts", -1)
	if strings.Contains(query, "LIMIT") {
		t.Fatal("negative limit must behave like 0")
	}
	if len(args) != 1 {
		t.Fatalf("expected only the collection arg, got %v", args)
	}
}

func TestListQueryAppliesPositiveLimit(t *testing.T) {
	query, args := listQuery("payouts", 50)
	if !strings.Contains(query, "LIMIT $2") {
		t.Fatalf("expected LIMIT clause, got query: %s", query)
	}
	if len(args) != 2 || args[1] != 50 {
		t.Fatalf("expected limit arg 50, got %v", args)
	}
	if !strings.Contains(query, "ORDER BY created_at DESC, id ASC") {
		t.Fatalf("expected deterministic ordering, got query: %s", query)
	}
}
