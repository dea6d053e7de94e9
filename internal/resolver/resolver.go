// Package resolver maps a free-text product mention onto catalog rows.
//
// Matching is deliberately approximate and cheap: a two-pass narrowing that
// first requires every mention word as a substring of the name, then relaxes
// to the single most distinctive word. Appropriate for catalogs of a few
// hundred rows queried interactively; not a search engine.
package resolver

import (
	"strings"

	"labstock/internal/catalog"
)

// Status tags the outcome of a resolution.
type Status int

const (
	// NotFound means no catalog row survived either pass.
	NotFound Status = iota
	// Resolved means exactly one row matched.
	Resolved
	// Ambiguous means several rows matched and the caller must
	// disambiguate; the core never guesses.
	Ambiguous
)

// Result is the tagged outcome of Resolve. Item is set only for Resolved;
// Candidates only for Ambiguous, in store order.
type Result struct {
	Status     Status
	Item       *catalog.Item
	Candidates []catalog.Item
}

// minTokenLen drops units and articles ("mL", "de", "a") from mentions.
const minTokenLen = 3

// Resolve matches mention against the catalog snapshot. Pure function:
// repeated calls with the same inputs return the same result, and ties
// keep the catalog's row order.
func Resolve(mention string, items []catalog.Item) Result {
	tokens := tokenize(mention)
	if len(tokens) == 0 {
		return Result{Status: NotFound}
	}

	// Pass 1: the name must contain every token.
	matched := filter(items, func(name string) bool {
		for _, tok := range tokens {
			if !strings.Contains(name, tok) {
				return false
			}
		}
		return true
	})
	if r, done := outcome(matched); done {
		return r
	}

	// Pass 2: relax to the single longest token.
	longest := tokens[0]
	for _, tok := range tokens[1:] {
		if len(tok) > len(longest) {
			longest = tok
		}
	}
	matched = filter(items, func(name string) bool {
		return strings.Contains(name, longest)
	})
	if r, done := outcome(matched); done {
		return r
	}
	return Result{Status: NotFound}
}

// Rank orders ambiguous candidates by how many mention tokens their name
// hits, preserving store order between equals. The first element is the
// "best guess" a caller may present first, never auto-applied.
func Rank(mention string, candidates []catalog.Item) []catalog.Item {
	tokens := tokenize(mention)
	ranked := make([]catalog.Item, len(candidates))
	copy(ranked, candidates)

	hits := func(it catalog.Item) int {
		name := strings.ToLower(it.Name)
		n := 0
		for _, tok := range tokens {
			if strings.Contains(name, tok) {
				n++
			}
		}
		return n
	}

	// Stable insertion sort: ties keep store order.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && hits(ranked[j]) > hits(ranked[j-1]); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked
}

func tokenize(mention string) []string {
	var tokens []string
	for _, f := range strings.Fields(strings.ToLower(mention)) {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func filter(items []catalog.Item, keep func(name string) bool) []catalog.Item {
	var matched []catalog.Item
	for _, it := range items {
		if keep(strings.ToLower(it.Name)) {
			matched = append(matched, it)
		}
	}
	return matched
}

func outcome(matched []catalog.Item) (Result, bool) {
	switch len(matched) {
	case 0:
		return Result{}, false
	case 1:
		item := matched[0]
		return Result{Status: Resolved, Item: &item}, true
	default:
		return Result{Status: Ambiguous, Candidates: matched}, true
	}
}
