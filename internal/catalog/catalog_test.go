package catalog

import (
	"context"
	"errors"
	"testing"

	"labstock/internal/db"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewSQLiteStore(database)
}

// storeImpls lets the same contract tests run against both stores.
func storeImpls(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"sqlite": setupSQLiteStore(t),
		"memory": NewMemoryStore(),
	}
}

func TestInsertDefaults(t *testing.T) {
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			saved, err := store.Insert(ctx, Item{Name: "Ethanol 96%", Quantity: 5})
			if err != nil {
				t.Fatalf("Insert: %v", err)
			}
			if saved.ID == "" {
				t.Error("expected generated ID")
			}
			if saved.Category != DefaultCategory {
				t.Errorf("expected category %q, got %q", DefaultCategory, saved.Category)
			}
			if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
				t.Error("expected timestamps to be set")
			}
		})
	}
}

func TestFindByIDNotFound(t *testing.T) {
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.FindByID(context.Background(), "nope")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestUpsertOverwritesAllFields(t *testing.T) {
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			saved, err := store.Insert(ctx, Item{Name: "Acetone", Quantity: 2, Location: "Z1"})
			if err != nil {
				t.Fatalf("Insert: %v", err)
			}

			saved.Quantity = 7
			saved.Location = "Z2"
			saved.Threshold = 3
			updated, err := store.Upsert(ctx, *saved)
			if err != nil {
				t.Fatalf("Upsert: %v", err)
			}
			if updated.Quantity != 7 || updated.Location != "Z2" || updated.Threshold != 3 {
				t.Errorf("unexpected item after upsert: %+v", updated)
			}

			got, err := store.FindByID(ctx, saved.ID)
			if err != nil {
				t.Fatalf("FindByID: %v", err)
			}
			if got.Quantity != 7 {
				t.Errorf("expected quantity 7, got %v", got.Quantity)
			}
		})
	}
}

func TestListAllPreservesInsertionOrder(t *testing.T) {
	for name, store := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			names := []string{"Eppendorf tubes 1.5mL", "Eppendorf tubes 2mL", "PCR kit"}
			for _, n := range names {
				if _, err := store.Insert(ctx, Item{Name: n}); err != nil {
					t.Fatalf("Insert %q: %v", n, err)
				}
			}

			items, err := store.ListAll(ctx)
			if err != nil {
				t.Fatalf("ListAll: %v", err)
			}
			if len(items) != len(names) {
				t.Fatalf("expected %d items, got %d", len(names), len(items))
			}
			for i, n := range names {
				if items[i].Name != n {
					t.Errorf("item %d: expected %q, got %q", i, n, items[i].Name)
				}
			}
		})
	}
}

func TestNegativeQuantityAccepted(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	saved, err := store.Insert(ctx, Item{Name: "Gloves", Quantity: -3})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if saved.Quantity != -3 {
		t.Errorf("expected quantity -3, got %v", saved.Quantity)
	}
}
