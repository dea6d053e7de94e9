package catalog

import (
	"context"
	"errors"
	"time"
)

// DefaultCategory is assigned to items created without an explicit category.
const DefaultCategory = "GENERAL"

// ErrNotFound is returned when an item id does not exist in the store.
var ErrNotFound = errors.New("item not found")

// Item is a single catalog row. Quantity is kept unclamped: the planner
// accepts negative deltas and the store does not enforce non-negative stock.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit,omitempty"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory,omitempty"`
	Location    string     `json:"location,omitempty"`
	Threshold   float64    `json:"threshold"`
	Lot         string     `json:"lot,omitempty"`
	Expiry      *time.Time `json:"expiry,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Store is the catalog boundary. The core requires exactly these four
// operations; no transactions or atomic multi-row writes are assumed.
type Store interface {
	ListAll(ctx context.Context) ([]Item, error)
	FindByID(ctx context.Context, id string) (*Item, error)
	Upsert(ctx context.Context, item Item) (*Item, error)
	Insert(ctx context.Context, item Item) (*Item, error)
}
