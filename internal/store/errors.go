package store

import "github.com/versepace/versepace/internal/errors"

// ErrNotFound is returned by KV.Get when a key has no value.
var ErrNotFound = errors.NotFound("key not found")
