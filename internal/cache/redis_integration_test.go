package cache_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"

	"github.com/chainstamp/chainstamp/internal/cache"
)

const redisPort = "6399"

var redisAddr string

func TestMain(m *testing.M) {
	os.Exit(testmain(m))
}

func testmain(m *testing.M) int {
	if os.Getenv("CHAINSTAMP_INTEGRATION") == "" {
		return m.Run()
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("failed to create pool: %v", err)
		return 1
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository:   "redis",
		Tag:          "7.2",
		ExposedPorts: []string{"6379"},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"6379": {{HostIP: "0.0.0.0", HostPort: redisPort}},
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Printf("failed to create resource: %v", err)
		return 1
	}
	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Printf("failed to purge pool: %v", err)
		}
	}()

	redisAddr = fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp"))

	err = pool.Retry(func() error {
		c := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer c.Close()
		return c.Ping(context.Background()).Err()
	})
	if err != nil {
		log.Printf("failed to connect to redis: %v", err)
		return 1
	}

	return m.Run()
}

func TestRedisStoreIntegration(t *testing.T) {
	if testing.Short() || redisAddr == "" {
		t.Skip("skipping integration test")
	}

	// given
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer client.Close()

	sut := cache.NewRedisStore(client)
	require.NoError(t, sut.Health(ctx))

	// when
	err := sut.Set(ctx, "prepared:a", []byte("staged"), 300*time.Millisecond)
	require.NoError(t, err)

	stored, err := sut.SetIfNotExists(ctx, "prepared:a", []byte("other"), time.Second)
	require.NoError(t, err)
	require.False(t, stored)

	// then
	val, err := sut.Get(ctx, "prepared:a")
	require.NoError(t, err)
	require.Equal(t, []byte("staged"), val)

	time.Sleep(400 * time.Millisecond)

	_, err = sut.Get(ctx, "prepared:a")
	require.ErrorIs(t, err, cache.ErrCacheNotFound)

	exists, err := sut.Exists(ctx, "prepared:a")
	require.NoError(t, err)
	require.False(t, exists)
}
