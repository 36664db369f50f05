// Package storage holds the key-value backends that persist the inventory
// collections. Each collection is stored as one serialized JSON array under
// its own key.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable key-value store.
//
// PutMany must be all-or-nothing: either every entry becomes visible to later
// reads or none does. The repository relies on it to commit a stock decrement
// and the matching sale together.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	PutMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
