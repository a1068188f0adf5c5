package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"subtrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "subscriptions.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testSubscription() core.Subscription {
	return core.Subscription{
		Name:          "Netflix",
		Category:      "Streaming",
		Cost:          core.Money{Cents: 1599},
		RenewalDate:   "2024-02-15",
		PaymentMethod: "Credit Card",
	}
}

func TestInsertAndGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, testSubscription())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Name != "Netflix" || got.Cost.Cents != 1599 || got.RenewalDate != "2024-02-15" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("expected stored creation timestamp to read back")
	}
}

func TestIDsAreUniqueAndNotReused(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Insert(ctx, testSubscription())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	second, err := repo.Insert(ctx, testSubscription())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("id %d was reused after deletion", first.ID)
	}
}

func TestGetAllOrdersByName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Spotify Premium", "Adobe Creative Cloud", "Netflix"} {
		s := testSubscription()
		s.Name = name
		if _, err := repo.Insert(ctx, s); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	subs, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	want := []string{"Adobe Creative Cloud", "Netflix", "Spotify Premium"}
	if len(subs) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(subs))
	}
	for i, w := range want {
		if subs[i].Name != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, subs[i].Name)
		}
	}
}

func TestUpdateReplacesAllMutableFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, testSubscription())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	created.Name = "Netflix Premium"
	created.Category = "Entertainment"
	created.Cost = core.Money{Cents: 2299}
	created.RenewalDate = "2024-03-15"
	created.PaymentMethod = "PayPal"
	if err := repo.Update(ctx, created); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Name != "Netflix Premium" || got.Category != "Entertainment" ||
		got.Cost.Cents != 2299 || got.RenewalDate != "2024-03-15" || got.PaymentMethod != "PayPal" {
		t.Fatalf("update did not replace fields: %+v", got)
	}
}

func TestNotFoundPaths(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetByID expected ErrNotFound, got %v", err)
	}

	missing := testSubscription()
	missing.ID = 42
	if err := repo.Update(ctx, missing); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Update expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, 42); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Delete expected ErrNotFound, got %v", err)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subscriptions.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := repo.Insert(context.Background(), testSubscription()); err != nil {
		t.Fatalf("insert: %v", err)
	}
	repo.Close()

	// Reopening runs migrations again; existing data must survive.
	repo, err = NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer repo.Close()

	subs, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 row after reopen, got %d", len(subs))
	}
}
