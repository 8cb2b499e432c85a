// Package store persists named collections of JSON records.
//
// A collection is saved and loaded as a whole, in order. Backends must make
// Save atomic: after a failed Save the previously stored records are intact.
package store

import (
	"context"
	"encoding/json"
)

// Collection names.
const (
	Products   = "products"
	Categories = "categories"
	Vendors    = "vendors"
	Customers  = "customers"
	Settings   = "settings"
	Users      = "users"
)

// Store is a durable home for record collections.
type Store interface {
	// Load returns the records of collection in stored order. A collection
	// that was never saved loads as an empty slice.
	Load(ctx context.Context, collection string) ([]json.RawMessage, error)

	// Save replaces the contents of collection with records.
	Save(ctx context.Context, collection string, records []json.RawMessage) error

	// Close releases the backend.
	Close() error
}
