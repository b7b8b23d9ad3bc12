package services

import (
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/chainstamp/chainstamp/config"
	"github.com/chainstamp/chainstamp/internal/cache"
)

var ErrCacheUnknownType = errors.New("unknown cache type")

// NewCacheStore creates the cache.Store selected by cacheConfig.Engine and a function which releases it.
func NewCacheStore(cacheConfig *config.CacheConfig) (cache.Store, func(), error) {
	switch cacheConfig.Engine {
	case config.InMemory:
		return cache.NewMemoryStore(), func() {}, nil
	case config.Redis:
		c := redis.NewClient(&redis.Options{
			Addr:     cacheConfig.Redis.Addr,
			Password: cacheConfig.Redis.Password,
			DB:       cacheConfig.Redis.DB,
		})
		return cache.NewRedisStore(c), func() { _ = c.Close() }, nil
	default:
		return nil, nil, errors.Join(ErrCacheUnknownType, fmt.Errorf("engine: %s", cacheConfig.Engine))
	}
}
