// Package snapshot implements single-level undo. Each session keeps at
// most one snapshot: capturing a new one replaces the old, and a
// successful undo consumes it. The per-session keying replaces the
// process-wide "last backup" slot that a single-operator tool could get
// away with but concurrent sessions cannot. With an Archive attached,
// snapshots survive process restarts so one-shot CLI invocations can
// undo what a previous invocation applied.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"labstock/internal/catalog"
)

// DefaultSession is used by callers that do not track sessions, keeping
// the single-operator behavior of one shared undo slot.
const DefaultSession = "default"

// ErrNoSnapshot is returned when undo is called with nothing to restore.
var ErrNoSnapshot = errors.New("no snapshot to undo")

// Handle identifies one captured snapshot.
type Handle struct {
	ID         string
	Session    string
	Items      []catalog.Item
	CapturedAt time.Time
}

// Archive persists snapshots across processes, one per session.
type Archive interface {
	Save(ctx context.Context, h *Handle) error
	// Load returns the session's archived snapshot, or ErrNoSnapshot.
	Load(ctx context.Context, session string) (*Handle, error)
	Delete(ctx context.Context, session string) error
}

// Manager holds at most one snapshot per session.
type Manager struct {
	mu      sync.Mutex
	store   catalog.Store
	archive Archive
	held    map[string]*Handle
	// prev keeps the handle a Capture displaced, so a failed apply can
	// roll the slot back instead of losing the still-valid snapshot.
	prev map[string]*Handle
}

// NewManager creates an in-memory Manager restoring through the given store.
func NewManager(store catalog.Store) *Manager {
	return &Manager{
		store: store,
		held:  make(map[string]*Handle),
		prev:  make(map[string]*Handle),
	}
}

// NewPersistentManager creates a Manager that mirrors every snapshot into
// the archive, so undo works across process boundaries.
func NewPersistentManager(store catalog.Store, archive Archive) *Manager {
	m := NewManager(store)
	m.archive = archive
	return m
}

// Capture copies every field of the given items strictly before a plan is
// applied. Any prior snapshot for the session is displaced but kept
// recoverable via Rollback until the next Capture or Undo; two completed
// applies leave only the second's pre-state recoverable.
func (m *Manager) Capture(ctx context.Context, session string, items []catalog.Item) (*Handle, error) {
	if session == "" {
		session = DefaultSession
	}
	copied := make([]catalog.Item, len(items))
	copy(copied, items)
	for i := range copied {
		if items[i].Expiry != nil {
			exp := *items[i].Expiry
			copied[i].Expiry = &exp
		}
	}

	h := &Handle{
		ID:         uuid.New().String(),
		Session:    session,
		Items:      copied,
		CapturedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.archive != nil {
		if err := m.archive.Save(ctx, h); err != nil {
			return nil, fmt.Errorf("archiving snapshot: %w", err)
		}
	}

	m.prev[session] = m.held[session]
	m.held[session] = h
	return h, nil
}

// Rollback reinstates the snapshot the last Capture displaced. Callers
// use it when the apply that followed a Capture failed, so the session's
// previous snapshot stays undoable. One level only; a no-op when nothing
// was displaced.
func (m *Manager) Rollback(ctx context.Context, session string) error {
	if session == "" {
		session = DefaultSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.prev[session]
	if !ok {
		return nil
	}
	delete(m.prev, session)

	if p == nil {
		delete(m.held, session)
	} else {
		m.held[session] = p
	}

	if m.archive != nil {
		if p == nil {
			return m.archive.Delete(ctx, session)
		}
		return m.archive.Save(ctx, p)
	}
	return nil
}

// Undo restores every captured field of every captured item verbatim,
// including fields a later unrelated edit may have touched in between
// (last-snapshot-wins is the documented behavior). The snapshot is
// consumed only after every item restored; a failed restore keeps it
// held so the caller can retry. A second undo after a complete restore
// fails with ErrNoSnapshot.
func (m *Manager) Undo(ctx context.Context, session string) ([]catalog.Item, error) {
	if session == "" {
		session = DefaultSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.held[session]
	if h == nil && m.archive != nil {
		loaded, err := m.archive.Load(ctx, session)
		if err != nil && !errors.Is(err, ErrNoSnapshot) {
			return nil, fmt.Errorf("loading archived snapshot: %w", err)
		}
		h = loaded
	}
	if h == nil {
		return nil, ErrNoSnapshot
	}

	restored := make([]catalog.Item, 0, len(h.Items))
	for _, item := range h.Items {
		saved, err := m.store.Upsert(ctx, item)
		if err != nil {
			m.held[session] = h
			return restored, fmt.Errorf("restoring item %s: %w", item.ID, err)
		}
		restored = append(restored, *saved)
	}

	delete(m.held, session)
	delete(m.prev, session)
	if m.archive != nil {
		if err := m.archive.Delete(ctx, session); err != nil {
			log.Printf("snapshot: deleting archived snapshot for %s: %v", session, err)
		}
	}
	return restored, nil
}

// Pending reports whether the session has a snapshot available to undo.
func (m *Manager) Pending(ctx context.Context, session string) bool {
	if session == "" {
		session = DefaultSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.held[session]; ok {
		return true
	}
	if m.archive != nil {
		if h, err := m.archive.Load(ctx, session); err == nil && h != nil {
			return true
		}
	}
	return false
}
