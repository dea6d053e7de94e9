package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"labstock/internal/catalog"
	"labstock/internal/db"
)

// SQLiteArchive persists one snapshot per session in the snapshots table,
// so undo survives process restarts.
type SQLiteArchive struct {
	db *db.DB
}

// NewSQLiteArchive creates an archive over the given database.
func NewSQLiteArchive(database *db.DB) *SQLiteArchive {
	return &SQLiteArchive{db: database}
}

func (a *SQLiteArchive) Save(ctx context.Context, h *Handle) error {
	items, err := json.Marshal(h.Items)
	if err != nil {
		return fmt.Errorf("encoding snapshot items: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO snapshots (session, id, items, captured_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session) DO UPDATE SET
			id = excluded.id,
			items = excluded.items,
			captured_at = excluded.captured_at
	`, h.Session, h.ID, string(items), h.CapturedAt)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (a *SQLiteArchive) Load(ctx context.Context, session string) (*Handle, error) {
	h := &Handle{Session: session}
	var items string

	row := a.db.QueryRowContext(ctx,
		`SELECT id, items, captured_at FROM snapshots WHERE session = ?`, session)
	if err := row.Scan(&h.ID, &items, &h.CapturedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(items), &h.Items); err != nil {
		return nil, fmt.Errorf("decoding snapshot items: %w", err)
	}
	if h.Items == nil {
		h.Items = []catalog.Item{}
	}
	return h, nil
}

func (a *SQLiteArchive) Delete(ctx context.Context, session string) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM snapshots WHERE session = ?`, session)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}
