package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by ResultCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// ResultCache stores converted automata by request digest.
// Implementations must be safe for concurrent use.
type ResultCache interface {
	// Get returns the stored value or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}
