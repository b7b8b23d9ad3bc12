package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheNotFound       = errors.New("key not found in cache")
	ErrCacheFailedToSet    = errors.New("failed to set value in cache")
	ErrCacheFailedToDel    = errors.New("failed to delete value from cache")
	ErrCacheFailedToGet    = errors.New("failed to get value from cache")
	ErrCacheFailedToExists = errors.New("failed to check key in cache")
	ErrCacheUnavailable    = errors.New("cache unavailable")
)

// Store is a key-value store with per-key TTL. Every write carries an explicit
// TTL, there are no multi-key transactions.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetIfNotExists stores value only if key is absent or expired. It reports whether the value was stored.
	SetIfNotExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Health(ctx context.Context) error
}
