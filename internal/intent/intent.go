package intent

// Action says how a quantity in an Intent combines with the current stock.
type Action string

const (
	// ActionAdd sums the intent quantity onto the current quantity.
	// Negative deltas are valid and remove stock.
	ActionAdd Action = "add"
	// ActionReplace sets the quantity to the intent value exactly.
	ActionReplace Action = "replace"
)

// Intent is the typed result of one model reply in single-update form.
// The product mention is free text and not yet resolved against the catalog.
// Pointer fields distinguish "absent" from zero so the planner never nulls
// a field the reply did not mention.
type Intent struct {
	ProductMention string
	Quantity       *float64
	Unit           string
	Action         Action
	Location       string
	Threshold      *float64
	Category       string
}

// Empty reports whether the intent carries nothing actionable.
func (in Intent) Empty() bool {
	return in.Quantity == nil && in.Unit == "" && in.Location == "" &&
		in.Threshold == nil && in.Category == ""
}

// BatchUpdate is one row of a batch-form reply, keyed by catalog id when
// the model echoes it back, otherwise by exact name.
type BatchUpdate struct {
	ItemID        string
	Name          string
	FinalQuantity *float64
	Delta         *float64
}

// Kind discriminates the two reply shapes.
type Kind int

const (
	// KindSingle is a lone JSON object describing one update.
	KindSingle Kind = iota
	// KindBatch is a JSON array of per-item updates.
	KindBatch
)

// Parsed is the tagged result of parsing a raw model reply. The shape is
// decided by which bracket pair opens first in the text, never by marker
// substrings in the surrounding prose.
type Parsed struct {
	Kind   Kind
	Intent Intent
	Batch  []BatchUpdate
}
