package todoreg

import "github.com/mparente/todoreg/pkg/todoreg/store"

// ID identifies a todo item. The id space is the full 16-bit range.
type ID = uint16

// Capacity is the total number of ids the registry can hold.
const Capacity = 1 << 16

// Item is a todo entry as stored by the registry.
type Item = store.Item

// Page is one page of a read_all listing.
type Page struct {
	// Items holds the item texts for this page, in ascending id order.
	Items []string `json:"items"`

	// Next is the number of the following page, or nil when this page
	// is the last one.
	Next *ID `json:"next"`
}

// DefaultPageSize is the number of items per read_all page unless
// overridden with WithPageSize.
const DefaultPageSize = 10
