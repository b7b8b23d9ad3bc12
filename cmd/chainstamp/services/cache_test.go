package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainstamp/chainstamp/config"
	"github.com/chainstamp/chainstamp/internal/cache"
)

func TestNewCacheStore(t *testing.T) {
	tt := []struct {
		name   string
		config *config.CacheConfig

		expectedErr error
	}{
		{
			name:   "in memory",
			config: &config.CacheConfig{Engine: config.InMemory},
		},
		{
			name:   "redis",
			config: &config.CacheConfig{Engine: config.Redis, Redis: &config.RedisConfig{Addr: "localhost:6379"}},
		},
		{
			name:   "unknown",
			config: &config.CacheConfig{Engine: "memcached"},

			expectedErr: ErrCacheUnknownType,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// when
			store, closeFn, err := NewCacheStore(tc.config)

			// then
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			defer closeFn()

			switch tc.config.Engine {
			case config.InMemory:
				require.IsType(t, &cache.MemoryStore{}, store)
			case config.Redis:
				require.IsType(t, &cache.RedisStore{}, store)
			}
		})
	}
}
