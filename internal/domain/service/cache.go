package service

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when no entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the explicit cache contract used by the catalog's read-through
// layer. Mutations call Delete synchronously after the store write and
// before acknowledging the caller, which is what keeps reads coherent.
type Cache interface {
	// Get returns the serialized snapshot stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a serialized snapshot under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete evicts the entry under key. Deleting an absent key is not an error.
	Delete(ctx context.Context, keys ...string) error
}
