package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = time.Minute

// MemoryStore is a process local Store. It is meant for development and tests,
// workers sharing state must use Redis.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, memoryCleanupInterval),
	}
}

// Get retrieves a value by key. It returns ErrCacheNotFound if the key does not exist or has expired.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	value, found := s.cache.Get(key)
	if !found {
		return nil, ErrCacheNotFound
	}

	b, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheFailedToGet
	}

	return clone(b), nil
}

// Set stores a key-value pair. A zero ttl means no expiry.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.cache.Set(key, clone(value), expiration(ttl))
	return nil
}

func (s *MemoryStore) SetIfNotExists(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	err := s.cache.Add(key, clone(value), expiration(ttl))
	if err != nil {
		return false, nil
	}

	return true, nil
}

// Del removes keys from the store.
func (s *MemoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.cache.Delete(key)
	}
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	_, found := s.cache.Get(key)
	return found, nil
}

func (s *MemoryStore) Health(_ context.Context) error {
	return nil
}

func expiration(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return gocache.NoExpiration
	}
	return ttl
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
