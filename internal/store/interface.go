package store

import "context"

// KV is an opaque blob store. Values are owned by the caller once returned.
//
// Implementations: the Badger Store in this package and sqlite.Store.
type KV interface {
	// Get returns the value under key, or ErrNotFound when there is none.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
