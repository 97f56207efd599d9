package docstore

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInsertAssignsIDAndTimestamps(t *testing.T) {
	store := NewMemoryStore()

	doc, err := store.Insert(context.Background(), "payouts", map[string]interface{}{"status": "pending"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if doc.ID == "" {
		t.Fatal("expected assigned id")
	}
	if !doc.UpdatedAt.Equal(doc.CreatedAt) {
		t.Fatalf("expected updated == created on insert, got %v / %v", doc.UpdatedAt, doc.CreatedAt)
	}
}

func TestUpdateKeepsTimestampsMonotonic(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return now })

	doc, err := store.Insert(context.Background(), "payouts", map[string]interface{}{"status": "pending"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	now = now.Add(time.Minute)
	updated, err := store.Update(context.Background(), "payouts", doc.ID, map[string]interface{}{"status": "completed"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatal("updated must not precede created")
	}
	if updated.Fields["status"] != "completed" {
		t.Fatalf("expected merged patch, got %v", updated.Fields)
	}

	// A clock stuck in the past must not move updated_at backwards.
	now = now.Add(-time.Hour)
	again, err := store.Update(context.Background(), "payouts", doc.ID, map[string]interface{}{"notes": "x"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if again.UpdatedAt.Before(updated.UpdatedAt) {
		t.Fatal("updated_at went backwards")
	}
}

func TestGetAndDeleteNotFound(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get(context.Background(), "payouts", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(context.Background(), "payouts", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	doc, _ := store.Insert(context.Background(), "providers", map[string]interface{}{"name": "Asha"})

	docs, err := store.List(context.Background(), "providers", 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	docs[0].Fields["name"] = "mutated"

	fresh, _ := store.Get(context.Background(), "providers", doc.ID)
	if fresh.Fields["name"] != "Asha" {
		t.Fatal("list result aliases stored document")
	}
}

func TestListHonorsLimitAndOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		now = now.Add(time.Second)
		if _, err := store.Insert(context.Background(), "jobs", map[string]interface{}{"n": i}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	docs, err := store.List(context.Background(), "jobs", 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].CreatedAt.Before(docs[1].CreatedAt) {
		t.Fatal("expected newest first")
	}
}
