package timestamp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/chainstamp/chainstamp/internal/cache"
)

const (
	preparedKeyPrefix     = "prepared:"
	recordKeyPrefix       = "timestamp:"
	statusKeyPrefix       = "status:"
	txIndexKeyPrefix      = "txindex:"
	registerLockKeyPrefix = "lock:register:"
)

func preparedKey(dataHash string) string {
	return preparedKeyPrefix + dataHash
}

func recordKey(dataHash string) string {
	return recordKeyPrefix + dataHash
}

func statusKey(txHash string) string {
	return statusKeyPrefix + strings.ToLower(txHash)
}

func txIndexKey(txHash string) string {
	return txIndexKeyPrefix + strings.ToLower(txHash)
}

func registerLockKey(dataHash string) string {
	return registerLockKeyPrefix + dataHash
}

// getJSON decodes the value at key into v. found is false if the key is absent.
func getJSON(ctx context.Context, store cache.Store, key string, v any) (found bool, err error) {
	b, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) {
			return false, nil
		}
		return false, err
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		return false, err
	}

	return true, nil
}

func setJSON(ctx context.Context, store cache.Store, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return store.Set(ctx, key, b, ttl)
}
