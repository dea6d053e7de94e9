package movement

import "time"

// Kind classifies a movement by the sign of its delta.
type Kind string

const (
	KindEntry Kind = "entry"
	KindExit  Kind = "exit"
)

// KindOf derives the movement kind from a quantity delta. Zero deltas
// produce no movement at all; callers check before recording.
func KindOf(delta float64) Kind {
	if delta > 0 {
		return KindEntry
	}
	return KindExit
}

// Record is one append-only audit entry for a quantity change.
type Record struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Delta     float64   `json:"delta"`
	Kind      Kind      `json:"kind"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}
