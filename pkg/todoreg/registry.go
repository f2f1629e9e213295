package todoreg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/mparente/todoreg/pkg/todoreg/observability"
	"github.com/mparente/todoreg/pkg/todoreg/store"
)

// Registry owns the todo collection: it allocates ids and implements the
// five service operations. Mutating operations (Add, Update, Delete) are
// serialized behind a write lock; queries (Read, ReadAll) take the read
// lock and run concurrently. Each operation is a single atomic unit.
type Registry struct {
	mu       sync.RWMutex
	store    store.Store
	pageSize int
	logger   *slog.Logger
	metrics  observability.MetricsRecorder

	// nextID is the next allocation candidate. Only the low 16 bits are
	// used; the counter wraps through the id space so freed ids are
	// recycled next-fit once the space has been lapped.
	nextID uint32

	closed bool
}

// New creates a Registry. Without options it holds items in memory and
// pages read_all at DefaultPageSize.
func New(opts ...Option) (*Registry, error) {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.store == nil {
		cfg.store = store.NewMemoryStore()
	}

	r := &Registry{
		store:    cfg.store,
		pageSize: cfg.pageSize,
		logger:   cfg.logger,
		metrics:  cfg.metrics,
	}

	// Resume allocation above the highest live id when the store was
	// opened with existing items.
	n, err := r.store.Len()
	if err != nil {
		return nil, fmt.Errorf("inspect store: %w", err)
	}
	if n > 0 {
		last, err := r.store.List(n-1, 1)
		if err != nil {
			return nil, fmt.Errorf("inspect store: %w", err)
		}
		if len(last) != 1 {
			return nil, fmt.Errorf("inspect store: expected 1 item at offset %d, got %d", n-1, len(last))
		}
		r.nextID = uint32(last[0].ID) + 1
	}

	return r, nil
}

// Add stores text under a freshly allocated id and returns the id.
// Returns ErrRegistryFull when all ids are in use.
func (r *Registry) Add(ctx context.Context, text string) (ID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, ErrRegistryClosed
	}

	id, err := r.allocate()
	if err != nil {
		return 0, err
	}
	if err := r.store.Put(id, text); err != nil {
		return 0, fmt.Errorf("store item %d: %w", id, err)
	}

	if r.logger != nil {
		r.logger.Debug("item added", slog.Int("id", int(id)))
	}
	r.recordSize(ctx)
	return id, nil
}

// allocate returns an unused id. The caller must hold the write lock.
func (r *Registry) allocate() (ID, error) {
	n, err := r.store.Len()
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	if n >= Capacity {
		return 0, ErrRegistryFull
	}

	for i := 0; i < Capacity; i++ {
		candidate := ID(r.nextID % Capacity)
		r.nextID++
		taken, err := r.store.Has(candidate)
		if err != nil {
			return 0, fmt.Errorf("probe id %d: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	// Unreachable: Len reported a free id above.
	return 0, ErrRegistryFull
}

// Read returns the text stored under id.
// Returns ErrNotFound if the id is absent.
func (r *Registry) Read(ctx context.Context, id ID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return "", ErrRegistryClosed
	}

	text, err := r.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("no todo with id %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read item %d: %w", id, err)
	}
	return text, nil
}

// ReadAll returns one page of item texts in ascending id order.
//
// Pages are numbered from 1; values below 1 are treated as 1. Page.Next
// carries the following page number while more items remain. Page 1 of an
// empty registry is an empty page; any other page past the end of the
// data fails with ErrInvalidPage.
func (r *Registry) ReadAll(ctx context.Context, page ID) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return Page{}, ErrRegistryClosed
	}

	if page < 1 {
		page = 1
	}
	offset := (int(page) - 1) * r.pageSize

	items, err := r.store.List(offset, r.pageSize)
	if err != nil {
		return Page{}, fmt.Errorf("list items: %w", err)
	}
	if len(items) == 0 && page != 1 {
		return Page{}, fmt.Errorf("page %d: %w", page, ErrInvalidPage)
	}

	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, item.Text)
	}

	result := Page{Items: texts}
	total, err := r.store.Len()
	if err != nil {
		return Page{}, fmt.Errorf("count items: %w", err)
	}
	if total > offset+r.pageSize && page < math.MaxUint16 {
		next := page + 1
		result.Next = &next
	}
	return result, nil
}

// Update replaces the text stored under id.
// Returns ErrNotFound if the id is absent.
func (r *Registry) Update(ctx context.Context, id ID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	taken, err := r.store.Has(id)
	if err != nil {
		return fmt.Errorf("probe id %d: %w", id, err)
	}
	if !taken {
		return fmt.Errorf("no todo with id %d: %w", id, ErrNotFound)
	}
	if err := r.store.Put(id, text); err != nil {
		return fmt.Errorf("update item %d: %w", id, err)
	}

	if r.logger != nil {
		r.logger.Debug("item updated", slog.Int("id", int(id)))
	}
	return nil
}

// Delete removes the item stored under id.
// Returns ErrNotFound if the id is absent.
func (r *Registry) Delete(ctx context.Context, id ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	err := r.store.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no todo with id %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	if r.logger != nil {
		r.logger.Debug("item deleted", slog.Int("id", int(id)))
	}
	r.recordSize(ctx)
	return nil
}

// Len returns the number of live items.
func (r *Registry) Len() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return 0, ErrRegistryClosed
	}
	return r.store.Len()
}

// Close closes the registry and its store. Subsequent operations fail
// with ErrRegistryClosed. Close is idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.store.Close()
}

// recordSize reports the live item count to the metrics recorder.
// The caller must hold a lock.
func (r *Registry) recordSize(ctx context.Context) {
	n, err := r.store.Len()
	if err != nil {
		return
	}
	r.metrics.RecordRegistrySize(ctx, int64(n))
}
