package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store that preserves insertion order,
// used by tests and by callers that load a catalog snapshot up front.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Item
	index map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]int)}
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	item := s.items[i]
	return &item, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, item Item) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		return s.insertLocked(item)
	}
	item.UpdatedAt = time.Now().UTC()
	if i, ok := s.index[item.ID]; ok {
		if item.CreatedAt.IsZero() {
			item.CreatedAt = s.items[i].CreatedAt
		}
		s.items[i] = item
		return &item, nil
	}
	return s.insertLocked(item)
}

func (s *MemoryStore) Insert(ctx context.Context, item Item) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(item)
}

func (s *MemoryStore) insertLocked(item Item) (*Item, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Category == "" {
		item.Category = DefaultCategory
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	s.index[item.ID] = len(s.items)
	s.items = append(s.items, item)
	return &item, nil
}
