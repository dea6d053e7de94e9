// Package alert decides when stock has fallen to or below its threshold
// and hands the resulting events to notifiers. Evaluation is stateless:
// every application that leaves an item at or under threshold re-emits an
// event, and de-duplication is the notifier's concern.
package alert

import (
	"time"

	"labstock/internal/catalog"
)

// Event says an item's stock is at or below its alerting threshold.
type Event struct {
	Item      catalog.Item `json:"item"`
	Quantity  float64      `json:"quantity"`
	Threshold float64      `json:"threshold"`
	At        time.Time    `json:"at"`
}

// Evaluate returns an event iff threshold > 0 and quantity <= threshold.
// A zero threshold means "no alert" regardless of quantity. The boundary
// is inclusive only at equality: quantity just above threshold stays
// silent. Pure function; quantity-only concern (other field changes never
// alert).
func Evaluate(item catalog.Item) *Event {
	if item.Threshold <= 0 || item.Quantity > item.Threshold {
		return nil
	}
	return &Event{
		Item:      item,
		Quantity:  item.Quantity,
		Threshold: item.Threshold,
		At:        time.Now().UTC(),
	}
}
