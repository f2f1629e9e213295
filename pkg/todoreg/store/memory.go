package store

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory item store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[uint16]string
	closed bool
}

// NewMemoryStore creates a new in-memory item store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[uint16]string),
	}
}

// Put implements Store.
func (m *MemoryStore) Put(id uint16, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.items[id] = text
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(id uint16) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrStoreClosed
	}

	text, ok := m.items[id]
	if !ok {
		return "", ErrNotFound
	}
	return text, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(id uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// Has implements Store.
func (m *MemoryStore) Has(id uint16) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, ErrStoreClosed
	}

	_, ok := m.items[id]
	return ok, nil
}

// List implements Store.
func (m *MemoryStore) List(offset, limit int) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	ids := make([]uint16, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if limit >= 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{ID: id, Text: m.items[id]})
	}
	return items, nil
}

// Len implements Store.
func (m *MemoryStore) Len() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}
	return len(m.items), nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = nil
	return nil
}
