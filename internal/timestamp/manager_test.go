package timestamp_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/chainstamp/chainstamp/internal/cache"
	"github.com/chainstamp/chainstamp/internal/events"
	"github.com/chainstamp/chainstamp/internal/gateway"
	"github.com/chainstamp/chainstamp/internal/gateway/mocks"
	"github.com/chainstamp/chainstamp/internal/timestamp"
)

const (
	userAddress  = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
	otherAddress = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"
	testTxHash   = "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"
	testChainID  = 11155111
)

var testData = json.RawMessage(`{"document":"invoice-42","amount":100}`)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Notify(_ context.Context, event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *recorder) Types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]events.Type, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

type fixture struct {
	store    cache.Store
	gateway  *mocks.GatewayMock
	notifier *recorder
	sut      *timestamp.Manager
}

func newFixture(t *testing.T, opts ...func(*timestamp.Manager)) *fixture {
	t.Helper()

	return newFixtureWithStore(t, cache.NewMemoryStore(), opts...)
}

func newFixtureWithStore(t *testing.T, store cache.Store, opts ...func(*timestamp.Manager)) *fixture {
	t.Helper()

	f := &fixture{
		store:    store,
		notifier: &recorder{},
		gateway: &mocks.GatewayMock{
			GetAccountNonceFunc: func(_ context.Context, _ string) (uint64, error) {
				return 7, nil
			},
			GetNetworkConfigFunc: func(_ context.Context) (*gateway.NetworkConfig, error) {
				return &gateway.NetworkConfig{ChainID: big.NewInt(testChainID), GasPrice: big.NewInt(20_000_000_000), LatestBlock: 100}, nil
			},
			GetTransactionByHashFunc: func(_ context.Context, _ string) (*gateway.Transaction, error) {
				return nil, gateway.ErrTransactionNotFound
			},
		},
	}

	defaults := []func(*timestamp.Manager){
		timestamp.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		timestamp.WithNotifier(f.notifier),
		timestamp.WithPropagationDelay(0),
		timestamp.WithPollInterval(10 * time.Millisecond),
		timestamp.WithChain(timestamp.ChainConfig{
			ChainID:      testChainID,
			GasLimit:     100_000,
			GasPrice:     big.NewInt(20_000_000_000),
			ExplorerURL:  "https://sepolia.etherscan.io/",
			Symbol:       "ETH",
			FiatRate:     2000,
			FiatCurrency: "USD",
		}),
	}

	f.sut = timestamp.NewManager(f.store, f.gateway, append(defaults, opts...)...)

	return f
}

// minedTx returns the network view of a transaction carrying dataHash.
func minedTx(dataHash, from string, status gateway.TxStatus) *gateway.Transaction {
	data, _ := json.Marshal(timestamp.Payload{DataHash: dataHash, Timestamp: 1})

	return &gateway.Transaction{
		Hash:        testTxHash,
		Status:      status,
		From:        from,
		Data:        data,
		BlockNumber: 5_000_000,
		BlockHash:   "0x01d8c5f0b3c5a1d8e5e5a8f1c8f5b0d2e1f3a4b5c6d7e8f9a0b1c2d3e4f5a6b7",
		BlockTime:   time.Unix(1_700_000_000, 0),
	}
}

func putRecord(t *testing.T, store cache.Store, record timestamp.Record) {
	t.Helper()

	b, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "timestamp:"+record.DataHash, b, time.Hour))
}

func exists(t *testing.T, store cache.Store, key string) bool {
	t.Helper()

	found, err := store.Exists(context.Background(), key)
	require.NoError(t, err)
	return found
}

func newKey(t *testing.T) (string, func(hash []byte) []byte) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sign := func(hash []byte) []byte {
		sig, err := crypto.Sign(hash, key)
		require.NoError(t, err)
		return sig
	}

	return crypto.PubkeyToAddress(key.PublicKey).Hex(), sign
}

var errNetwork = errors.New("dial tcp 10.0.0.1:8545: i/o timeout")

// flakyStore fails writes to keys with prefix while failing is set.
type flakyStore struct {
	*cache.MemoryStore
	prefix  string
	failing atomic.Bool
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.failing.Load() && strings.HasPrefix(key, s.prefix) {
		return cache.ErrCacheFailedToSet
	}

	return s.MemoryStore.Set(ctx, key, value, ttl)
}
