package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"labstock/internal/db"
)

// SQLiteStore persists catalog items in the labstock SQLite database.
type SQLiteStore struct {
	db *db.DB
}

// NewSQLiteStore creates a store backed by the given database.
func NewSQLiteStore(database *db.DB) *SQLiteStore {
	return &SQLiteStore{db: database}
}

const itemColumns = `id, name, quantity, unit, category, subcategory, location, threshold, lot, expiry, created_at, updated_at`

// ListAll returns every catalog item in insertion order.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// FindByID returns the item with the given id, or ErrNotFound.
func (s *SQLiteStore) FindByID(ctx context.Context, id string) (*Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Upsert writes all fields of the item, inserting it if the id is new.
func (s *SQLiteStore) Upsert(ctx context.Context, item Item) (*Item, error) {
	if item.ID == "" {
		return s.Insert(ctx, item)
	}
	item.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			quantity = excluded.quantity,
			unit = excluded.unit,
			category = excluded.category,
			subcategory = excluded.subcategory,
			location = excluded.location,
			threshold = excluded.threshold,
			lot = excluded.lot,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at`,
		item.ID, item.Name, item.Quantity, item.Unit, item.Category,
		item.Subcategory, item.Location, item.Threshold, item.Lot,
		nullTime(item.Expiry), orNow(item.CreatedAt), item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting item %s: %w", item.ID, err)
	}
	return s.FindByID(ctx, item.ID)
}

// Insert creates a new item. A missing id or category gets a default.
func (s *SQLiteStore) Insert(ctx context.Context, item Item) (*Item, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Category == "" {
		item.Category = DefaultCategory
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Quantity, item.Unit, item.Category,
		item.Subcategory, item.Location, item.Threshold, item.Lot,
		nullTime(item.Expiry), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting item %q: %w", item.Name, err)
	}
	return s.FindByID(ctx, item.ID)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*Item, error) {
	var item Item
	var expiry sql.NullTime
	err := row.Scan(
		&item.ID, &item.Name, &item.Quantity, &item.Unit, &item.Category,
		&item.Subcategory, &item.Location, &item.Threshold, &item.Lot,
		&expiry, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning item: %w", err)
	}
	if expiry.Valid {
		item.Expiry = &expiry.Time
	}
	return &item, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
