package movement

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"labstock/internal/db"
)

// Store appends and lists movement records. Records are immutable once
// written; there is no update or delete path.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record appends one movement and returns the stored entry. A zero delta
// is dropped silently: no stock moved, so there is nothing to audit.
func (s *Store) Record(ctx context.Context, itemID, itemName string, delta float64, actor string) (*Record, error) {
	if delta == 0 {
		return nil, nil
	}

	r := Record{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		ItemName:  itemName,
		Delta:     delta,
		Kind:      KindOf(delta),
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO movements (id, item_id, item_name, delta, kind, actor, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ItemID, r.ItemName, r.Delta, string(r.Kind), r.Actor, r.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting movement for %s: %w", itemID, err)
	}
	return &r, nil
}

// RecordBestEffort logs the movement and only warns on failure. Audit
// logging never rolls back an applied mutation.
func (s *Store) RecordBestEffort(ctx context.Context, itemID, itemName string, delta float64, actor string) *Record {
	r, err := s.Record(ctx, itemID, itemName, delta, actor)
	if err != nil {
		log.Printf("movement: dropping audit record for %s: %v", itemID, err)
		return nil
	}
	return r
}

// ListFilter narrows List output.
type ListFilter struct {
	ItemID string
	Limit  int
}

// List returns movements newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	query := `SELECT id, item_id, item_name, delta, kind, actor, timestamp
		FROM movements`
	args := []any{}

	if filter.ItemID != "" {
		query += ` WHERE item_id = ?`
		args = append(args, filter.ItemID)
	}
	query += ` ORDER BY timestamp DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var kind string
		if err := rows.Scan(&r.ID, &r.ItemID, &r.ItemName, &r.Delta, &kind, &r.Actor, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}
		r.Kind = Kind(kind)
		records = append(records, r)
	}
	return records, rows.Err()
}
