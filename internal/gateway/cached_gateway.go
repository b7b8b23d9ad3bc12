package gateway

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	networkConfigKey     = "network-config"
	networkConfigExpiry  = 30 * time.Second
	networkConfigCleanup = time.Minute
)

// CachedGateway memoizes the network config, which changes rarely and is read
// on every prepare. All other calls go straight to the wrapped gateway.
type CachedGateway struct {
	gateway    Gateway
	cacheStore *cache.Cache
	expiry     time.Duration
}

func WithConfigExpiry(d time.Duration) func(*CachedGateway) {
	return func(g *CachedGateway) {
		g.expiry = d
	}
}

func NewCached(gateway Gateway, opts ...func(*CachedGateway)) *CachedGateway {
	g := &CachedGateway{
		gateway: gateway,
		expiry:  networkConfigExpiry,
	}

	for _, opt := range opts {
		opt(g)
	}

	g.cacheStore = cache.New(g.expiry, networkConfigCleanup)

	return g
}

func (g *CachedGateway) GetAccountNonce(ctx context.Context, address string) (uint64, error) {
	return g.gateway.GetAccountNonce(ctx, address)
}

func (g *CachedGateway) GetNetworkConfig(ctx context.Context) (*NetworkConfig, error) {
	value, found := g.cacheStore.Get(networkConfigKey)
	if found {
		cfg, ok := value.(NetworkConfig)
		if ok {
			return &cfg, nil
		}
	}

	cfg, err := g.gateway.GetNetworkConfig(ctx)
	if err != nil {
		return nil, err
	}

	g.cacheStore.Set(networkConfigKey, *cfg, g.expiry)

	return cfg, nil
}

func (g *CachedGateway) GetTransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	return g.gateway.GetTransactionByHash(ctx, hash)
}

func (g *CachedGateway) Health(ctx context.Context) error {
	return g.gateway.Health(ctx)
}
