package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore is an implementation of Store using Redis.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore initializes a RedisStore.
func NewRedisStore(c redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: c,
	}
}

// Get retrieves a value by key.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheNotFound
	} else if err != nil {
		return nil, errors.Join(ErrCacheFailedToGet, err)
	}
	return result, nil
}

// Set stores a value with a TTL.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		return errors.Join(ErrCacheFailedToSet, err)
	}
	return nil
}

// SetIfNotExists stores a value with a TTL unless the key already exists.
func (r *RedisStore) SetIfNotExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, errors.Join(ErrCacheFailedToSet, err)
	}
	return ok, nil
}

// Del removes values by key. Missing keys are not an error.
func (r *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	err := r.client.Del(ctx, keys...).Err()
	if err != nil {
		return errors.Join(ErrCacheFailedToDel, err)
	}
	return nil
}

// Exists reports whether key is present.
func (r *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Join(ErrCacheFailedToExists, err)
	}
	return n > 0, nil
}

func (r *RedisStore) Health(ctx context.Context) error {
	err := r.client.Ping(ctx).Err()
	if err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}
