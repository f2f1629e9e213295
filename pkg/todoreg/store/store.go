// Package store provides item storage backends for the todo registry.
package store

import "errors"

// Item is a stored todo entry.
type Item struct {
	ID   uint16
	Text string
}

// Store persists todo items keyed by 16-bit id.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put inserts or replaces the item with the given id.
	Put(id uint16, text string) error

	// Get returns the text stored under id.
	// Returns ErrNotFound if the id is absent.
	Get(id uint16) (string, error)

	// Delete removes the item with the given id.
	// Returns ErrNotFound if the id is absent.
	Delete(id uint16) error

	// Has reports whether an item exists under id.
	Has(id uint16) (bool, error)

	// List returns items ordered by ascending id, skipping the first
	// offset items and returning at most limit items. A negative limit
	// means no bound.
	List(offset, limit int) ([]Item, error)

	// Len returns the number of stored items.
	Len() (int, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no item exists under the requested id.
	ErrNotFound = errors.New("item not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("store closed")
)
