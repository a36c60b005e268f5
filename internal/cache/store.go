// Package cache abstracts the key-value sink. Keys are colon-delimited and
// namespaced by sport and entity kind; values are compact JSON bytes.
package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key does not exist.
var ErrNotFound = errors.New("cache: key not found")

// Store is the key-value surface the pipeline needs from the cache sink.
type Store interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	Delete(ctx context.Context, keys ...string) (int64, error)
}
