// Package planner computes field-level catalog changes from a resolved
// intent before anything is written. Plans are values: computing one has
// no side effects, and an empty plan means "nothing to do".
package planner

import (
	"fmt"
	"strconv"
	"strings"

	"labstock/internal/catalog"
	"labstock/internal/intent"
	"labstock/internal/resolver"
)

// Change is one field mutation: old and new values as display strings
// plus the exact numeric quantity when the field is quantity.
type Change struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// Plan is the ordered set of changes for one target item. CreateNew marks
// a plan that inserts a fresh row instead of mutating an existing one.
type Plan struct {
	TargetID  string   `json:"target_id,omitempty"`
	CreateNew bool     `json:"create_new,omitempty"`
	Changes   []Change `json:"changes"`

	// NewItem holds the row to insert when CreateNew is set.
	NewItem *catalog.Item `json:"new_item,omitempty"`
	// NewQuantity and QuantityDelta are set when a quantity change is
	// planned; the delta feeds the movement log.
	NewQuantity   *float64 `json:"new_quantity,omitempty"`
	QuantityDelta float64  `json:"quantity_delta,omitempty"`
}

// Empty reports whether applying the plan would change nothing.
// Empty plans are never applied and never logged as movements.
func (p Plan) Empty() bool {
	return !p.CreateNew && len(p.Changes) == 0
}

// Apply returns a copy of item with the plan's changes written in.
// Numeric strings in Changes round-trip exactly (%g shortest form).
func (p Plan) Apply(item catalog.Item) catalog.Item {
	for _, c := range p.Changes {
		switch c.Field {
		case "quantity":
			if p.NewQuantity != nil {
				item.Quantity = *p.NewQuantity
			}
		case "unit":
			item.Unit = c.New
		case "location":
			item.Location = c.New
		case "category":
			item.Category = c.New
		case "threshold":
			if f, err := strconv.ParseFloat(c.New, 64); err == nil {
				item.Threshold = f
			}
		}
	}
	return item
}

// Compute derives the changes for a single-update intent against its
// resolution. Ambiguous resolutions always yield an empty plan: the caller
// must disambiguate, never guess.
func Compute(res resolver.Result, in intent.Intent) Plan {
	switch res.Status {
	case resolver.Ambiguous:
		return Plan{}
	case resolver.NotFound:
		return planCreate(in)
	default:
		return planUpdate(*res.Item, in)
	}
}

// planCreate builds a "create new item" plan when the mention matched
// nothing but the intent carries something worth storing.
func planCreate(in intent.Intent) Plan {
	if in.Quantity == nil && in.Unit == "" && in.Location == "" {
		// Nothing actionable: ask for clarification instead of
		// inserting an empty row.
		return Plan{}
	}

	item := catalog.Item{
		Name:     in.ProductMention,
		Unit:     in.Unit,
		Location: in.Location,
		Category: catalog.DefaultCategory,
	}
	if in.Category != "" {
		item.Category = in.Category
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.Threshold != nil {
		item.Threshold = *in.Threshold
	}

	p := Plan{CreateNew: true, NewItem: &item}
	p.Changes = append(p.Changes, Change{Field: "name", New: item.Name})
	if in.Quantity != nil {
		q := item.Quantity
		p.NewQuantity = &q
		p.QuantityDelta = q
		p.Changes = append(p.Changes, quantityChange(0, q))
	}
	if item.Unit != "" {
		p.Changes = append(p.Changes, Change{Field: "unit", New: item.Unit})
	}
	if item.Location != "" {
		p.Changes = append(p.Changes, Change{Field: "location", New: item.Location})
	}
	if in.Threshold != nil {
		p.Changes = append(p.Changes, Change{Field: "threshold", New: formatNumber(item.Threshold)})
	}
	if in.Category != "" {
		p.Changes = append(p.Changes, Change{Field: "category", New: item.Category})
	}
	return p
}

// planUpdate applies the sum/replace rule for quantity and the
// overwrite-if-present rule for every other field. Absent intent fields
// leave the item untouched.
func planUpdate(item catalog.Item, in intent.Intent) Plan {
	p := Plan{TargetID: item.ID}

	if in.Quantity != nil {
		newQ := *in.Quantity
		if in.Action == intent.ActionAdd {
			newQ = item.Quantity + *in.Quantity
		}
		if newQ != item.Quantity {
			p.NewQuantity = &newQ
			p.QuantityDelta = newQ - item.Quantity
			p.Changes = append(p.Changes, quantityChange(item.Quantity, newQ))
		}
	}
	if in.Unit != "" && in.Unit != item.Unit {
		p.Changes = append(p.Changes, Change{Field: "unit", Old: item.Unit, New: in.Unit})
	}
	if in.Location != "" && in.Location != item.Location {
		p.Changes = append(p.Changes, Change{Field: "location", Old: item.Location, New: in.Location})
	}
	if in.Threshold != nil && *in.Threshold != item.Threshold {
		p.Changes = append(p.Changes, Change{
			Field: "threshold",
			Old:   formatNumber(item.Threshold),
			New:   formatNumber(*in.Threshold),
		})
	}
	if in.Category != "" && in.Category != item.Category {
		p.Changes = append(p.Changes, Change{Field: "category", Old: item.Category, New: in.Category})
	}
	return p
}

// ComputeBatch derives one plan per batch row. Rows resolve by id first,
// then by exact name; unresolvable rows yield nil plans the caller reports.
func ComputeBatch(updates []intent.BatchUpdate, items []catalog.Item) []Plan {
	byID := make(map[string]catalog.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	plans := make([]Plan, 0, len(updates))
	for _, upd := range updates {
		item, ok := byID[upd.ItemID]
		if !ok {
			item, ok = findByName(items, upd.Name)
		}
		if !ok {
			plans = append(plans, Plan{})
			continue
		}

		in := intent.Intent{ProductMention: upd.Name}
		switch {
		case upd.FinalQuantity != nil:
			in.Quantity = upd.FinalQuantity
			in.Action = intent.ActionReplace
		case upd.Delta != nil:
			in.Quantity = upd.Delta
			in.Action = intent.ActionAdd
		}
		plans = append(plans, planUpdate(item, in))
	}
	return plans
}

func findByName(items []catalog.Item, name string) (catalog.Item, bool) {
	if name == "" {
		return catalog.Item{}, false
	}
	for _, it := range items {
		if strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return catalog.Item{}, false
}

func quantityChange(before, after float64) Change {
	return Change{Field: "quantity", Old: formatNumber(before), New: formatNumber(after)}
}

func formatNumber(f float64) string {
	return fmt.Sprintf("%g", f)
}
