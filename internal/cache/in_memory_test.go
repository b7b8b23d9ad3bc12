package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCache(t *testing.T) {
	t.Run("in-memory TTL", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		cStore := NewMemoryStore()

		key1 := "long-ttl"
		key2 := "short-ttl"

		ttl1 := 1 * time.Second
		ttl2 := 50 * time.Millisecond

		// when
		err := cStore.Set(ctx, key1, []byte("1"), ttl1)
		require.NoError(t, err)

		err = cStore.Set(ctx, key2, []byte("1"), ttl2)
		require.NoError(t, err)

		time.Sleep(60 * time.Millisecond)

		// then
		val, err := cStore.Get(ctx, key1)
		require.NoError(t, err)
		require.NotNil(t, val)

		val, err = cStore.Get(ctx, key2)
		require.Nil(t, val)
		require.ErrorIs(t, err, ErrCacheNotFound)

		exists, err := cStore.Exists(ctx, key2)
		require.NoError(t, err)
		require.False(t, exists)
	})
}

func TestInMemoryCacheLifeCycle(t *testing.T) {
	t.Run("in-memory life cycle", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		cStore := NewMemoryStore()

		key1 := "prepared:a"
		key2 := "prepared:b"

		// when keys are set then no errors are expected
		err := cStore.Set(ctx, key1, []byte("1"), time.Second)
		require.NoError(t, err)

		err = cStore.Set(ctx, key2, []byte("2"), 50*time.Millisecond)
		require.NoError(t, err)

		// when keys are deleted then ErrCacheNotFound is expected
		err = cStore.Del(ctx, key2)
		require.NoError(t, err)
		val, err := cStore.Get(ctx, key2)
		require.Nil(t, val)
		require.ErrorIs(t, err, ErrCacheNotFound)

		// when a missing key is deleted then no error is expected
		err = cStore.Del(ctx, "missing")
		require.NoError(t, err)

		// when the key exists then SetIfNotExists does not overwrite it
		stored, err := cStore.SetIfNotExists(ctx, key1, []byte("other"), time.Second)
		require.NoError(t, err)
		require.False(t, stored)

		val, err = cStore.Get(ctx, key1)
		require.NoError(t, err)
		require.Equal(t, []byte("1"), val)

		// when the key is absent then SetIfNotExists stores the value
		stored, err = cStore.SetIfNotExists(ctx, key2, []byte("3"), 20*time.Millisecond)
		require.NoError(t, err)
		require.True(t, stored)

		time.Sleep(30 * time.Millisecond)

		stored, err = cStore.SetIfNotExists(ctx, key2, []byte("4"), time.Second)
		require.NoError(t, err)
		require.True(t, stored)

		// when the returned slice is modified then the stored value is unchanged
		val, err = cStore.Get(ctx, key2)
		require.NoError(t, err)
		val[0] = 'x'

		val, err = cStore.Get(ctx, key2)
		require.NoError(t, err)
		require.Equal(t, []byte("4"), val)

		require.NoError(t, cStore.Health(ctx))
	})
}
