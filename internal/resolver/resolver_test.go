package resolver

import (
	"testing"

	"labstock/internal/catalog"
)

func testCatalog() []catalog.Item {
	return []catalog.Item{
		{ID: "1", Name: "Ethanol 96%", Quantity: 5, Threshold: 2},
		{ID: "2", Name: "Eppendorf tubes 1.5mL", Quantity: 100},
		{ID: "3", Name: "Eppendorf tubes 2mL", Quantity: 40},
		{ID: "4", Name: "Acetone HPLC grade", Quantity: 3},
	}
}

func TestResolveAllTokens(t *testing.T) {
	res := Resolve("eppendorf tubes 1.5ml", testCatalog())
	if res.Status != Resolved {
		t.Fatalf("expected Resolved, got %v", res.Status)
	}
	if res.Item.ID != "2" {
		t.Errorf("expected id 2, got %s", res.Item.ID)
	}
}

func TestResolveLongestTokenFallback(t *testing.T) {
	// "etanol" matches nothing whole, but pass 2 would too — use a mention
	// where pass 1 fails and the longest token lands a single row.
	res := Resolve("acetone bottle", testCatalog())
	if res.Status != Resolved {
		t.Fatalf("expected Resolved, got %v", res.Status)
	}
	if res.Item.ID != "4" {
		t.Errorf("expected id 4, got %s", res.Item.ID)
	}
}

func TestResolveAmbiguous(t *testing.T) {
	res := Resolve("eppendorf tubes", testCatalog())
	if res.Status != Ambiguous {
		t.Fatalf("expected Ambiguous, got %v", res.Status)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Candidates))
	}
	// Candidates keep store order; this pins the documented tie-break.
	if res.Candidates[0].ID != "2" || res.Candidates[1].ID != "3" {
		t.Errorf("candidates out of store order: %v, %v",
			res.Candidates[0].ID, res.Candidates[1].ID)
	}
}

func TestResolveNotFound(t *testing.T) {
	res := Resolve("kit pcr", testCatalog())
	if res.Status != NotFound {
		t.Fatalf("expected NotFound, got %v", res.Status)
	}
}

func TestResolveShortTokensDropped(t *testing.T) {
	// "de" and "mL" fall below the length cutoff and must not constrain.
	res := Resolve("mL de ethanol", testCatalog())
	if res.Status != Resolved || res.Item.ID != "1" {
		t.Fatalf("expected Ethanol resolved, got %+v", res)
	}
}

func TestResolveEmptyMention(t *testing.T) {
	if res := Resolve("  a b ", testCatalog()); res.Status != NotFound {
		t.Errorf("expected NotFound for all-short mention, got %v", res.Status)
	}
}

func TestResolveDeterministic(t *testing.T) {
	cat := testCatalog()
	first := Resolve("eppendorf tubes", cat)
	for i := 0; i < 10; i++ {
		again := Resolve("eppendorf tubes", cat)
		if again.Status != first.Status || len(again.Candidates) != len(first.Candidates) {
			t.Fatalf("resolution changed between calls: %+v vs %+v", first, again)
		}
	}

	res := Resolve("ethanol", cat)
	for i := 0; i < 10; i++ {
		again := Resolve("ethanol", cat)
		if again.Status != Resolved || again.Item.ID != res.Item.ID {
			t.Fatalf("resolved item changed between calls")
		}
	}
}

func TestRankPrefersMostTokenHits(t *testing.T) {
	cat := testCatalog()
	ranked := Rank("eppendorf tubes 2ml", []catalog.Item{cat[1], cat[2]})
	if ranked[0].ID != "3" {
		t.Errorf("expected the 2mL row ranked first, got %s", ranked[0].ID)
	}
}

func TestRankTiesKeepStoreOrder(t *testing.T) {
	cat := testCatalog()
	ranked := Rank("eppendorf tubes", []catalog.Item{cat[1], cat[2]})
	if ranked[0].ID != "2" || ranked[1].ID != "3" {
		t.Errorf("tie should keep store order, got %s then %s", ranked[0].ID, ranked[1].ID)
	}
}
