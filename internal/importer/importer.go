// Package importer loads catalog rows from CSV files into the store.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"labstock/internal/catalog"
)

// Result summarizes one import run.
type Result struct {
	Created int
	Updated int
	Skipped int
}

// columnAliases maps header names, English and Spanish, to canonical columns.
var columnAliases = map[string]string{
	"name":         "name",
	"nombre":       "name",
	"producto":     "name",
	"quantity":     "quantity",
	"cantidad":     "quantity",
	"unit":         "unit",
	"unidad":       "unit",
	"category":     "category",
	"categoria":    "category",
	"subcategory":  "subcategory",
	"subcategoria": "subcategory",
	"location":     "location",
	"ubicacion":    "location",
	"threshold":    "threshold",
	"umbral":       "threshold",
	"lot":          "lot",
	"lote":         "lot",
	"expiry":       "expiry",
	"vencimiento":  "expiry",
}

// ImportFile reads a CSV catalog file and loads it into the store.
func ImportFile(ctx context.Context, store catalog.Store, path string, reporter Reporter) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Import(ctx, store, f, reporter)
}

// Import reads CSV rows from r and inserts or updates catalog items.
// Rows whose name matches an existing item (case-insensitive) update it;
// everything else is inserted. Rows without a name are skipped.
func Import(ctx context.Context, store catalog.Store, r io.Reader, reporter Reporter) (*Result, error) {
	if reporter == nil {
		reporter = NoopReporter{}
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) == 0 {
		return &Result{}, nil
	}

	columns, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}
	rows = rows[1:]

	existing, err := store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	byName := make(map[string]catalog.Item, len(existing))
	for _, it := range existing {
		byName[strings.ToLower(it.Name)] = it
	}

	reporter.Start(len(rows))
	defer reporter.Finish()

	res := &Result{}
	for i, row := range rows {
		item, err := rowToItem(columns, row)
		if err != nil || item.Name == "" {
			res.Skipped++
			continue
		}

		if prev, ok := byName[strings.ToLower(item.Name)]; ok {
			item.ID = prev.ID
			item.CreatedAt = prev.CreatedAt
			if _, err := store.Upsert(ctx, item); err != nil {
				return res, fmt.Errorf("updating %s: %w", item.Name, err)
			}
			res.Updated++
		} else {
			saved, err := store.Insert(ctx, item)
			if err != nil {
				return res, fmt.Errorf("inserting %s: %w", item.Name, err)
			}
			byName[strings.ToLower(saved.Name)] = *saved
			res.Created++
		}

		reporter.Update(i+1, item.Name)
	}

	return res, nil
}

// mapHeader resolves the header row to canonical column indexes.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := columnAliases[key]; ok {
			columns[canonical] = i
		}
	}
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("CSV header has no name column")
	}
	return columns, nil
}

func rowToItem(columns map[string]int, row []string) (catalog.Item, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	item := catalog.Item{
		Name:        field("name"),
		Unit:        field("unit"),
		Category:    field("category"),
		Subcategory: field("subcategory"),
		Location:    field("location"),
		Lot:         field("lot"),
	}
	if item.Category == "" {
		item.Category = catalog.DefaultCategory
	}

	if v := field("quantity"); v != "" {
		q, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return item, fmt.Errorf("bad quantity %q", v)
		}
		item.Quantity = q
	}
	if v := field("threshold"); v != "" {
		th, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return item, fmt.Errorf("bad threshold %q", v)
		}
		item.Threshold = th
	}
	if v := field("expiry"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return item, fmt.Errorf("bad expiry %q", v)
		}
		item.Expiry = &t
	}

	return item, nil
}
