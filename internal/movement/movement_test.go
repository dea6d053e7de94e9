package movement

import (
	"context"
	"testing"

	"labstock/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestKindOf(t *testing.T) {
	if KindOf(2) != KindEntry {
		t.Error("positive delta should be an entry")
	}
	if KindOf(-2) != KindExit {
		t.Error("negative delta should be an exit")
	}
}

func TestRecordAndList(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, "1", "Ethanol 96%", -2, "alice"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := store.Record(ctx, "2", "PCR kit", 5, "bob"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	records, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	for _, r := range records {
		switch r.ItemID {
		case "1":
			if r.Kind != KindExit || r.Delta != -2 || r.Actor != "alice" {
				t.Errorf("unexpected exit record: %+v", r)
			}
		case "2":
			if r.Kind != KindEntry || r.Delta != 5 {
				t.Errorf("unexpected entry record: %+v", r)
			}
		default:
			t.Errorf("unexpected item id %s", r.ItemID)
		}
	}
}

func TestZeroDeltaProducesNoRecord(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, "1", "Ethanol 96%", 0, "alice"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	records, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("zero delta must not be recorded, got %d records", len(records))
	}
}

func TestListFilterByItemAndLimit(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, "1", "Ethanol 96%", 1, "alice"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.Record(ctx, "2", "PCR kit", 1, "alice"); err != nil {
		t.Fatal(err)
	}

	records, err := store.List(ctx, ListFilter{ItemID: "1", Limit: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
	for _, r := range records {
		if r.ItemID != "1" {
			t.Errorf("filter leaked item %s", r.ItemID)
		}
	}
}
