// Package timestamp implements the transaction lifecycle of a timestamp:
// preparing an unsigned transaction, staging it until it is signed elsewhere,
// registering the signed transaction and reconciling its on-chain status.
//
// The cache is the only state. Records are kept under
//
//	prepared:<dataHash>      staging record, short TTL
//	timestamp:<dataHash>     TimestampRecord
//	status:<txHash>          terminal transaction status
//	txindex:<txHash>         dataHash of the record registered with txHash
//	lock:register:<dataHash> held while a registration is in progress
package timestamp

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/chainstamp/chainstamp/internal/cache"
	"github.com/chainstamp/chainstamp/internal/events"
	"github.com/chainstamp/chainstamp/internal/gateway"
	"github.com/chainstamp/chainstamp/pkg/tracing"
)

var (
	ErrRecordNotFound         = errors.New("timestamp record not found")
	ErrPreparedNotFound       = errors.New("prepared transaction not found or expired")
	ErrAlreadyTimestamped     = errors.New("data already timestamped")
	ErrAddressMismatch        = errors.New("user address does not match prepared transaction")
	ErrRegistrationInProgress = errors.New("registration already in progress")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrPayloadMismatch        = errors.New("transaction payload does not reference data hash")
)

const (
	DefaultTTL              = 24 * time.Hour
	DefaultStagingTTL       = 300 * time.Second
	DefaultStatusTTL        = time.Hour
	DefaultLockTTL          = 30 * time.Second
	DefaultGasLimit         = 100_000
	DefaultPropagationDelay = 2 * time.Second
	DefaultPollInterval     = 2 * time.Second
	DefaultLookupTimeout    = 10 * time.Second
	DefaultMaxDataSize      = 10 * 1024
)

// ChainConfig holds the parameters of the unsigned transactions. Zero ChainID
// and nil GasPrice are taken from the network.
type ChainConfig struct {
	ChainID         uint64
	GasLimit        uint64
	GasPrice        *big.Int
	ReceiverAddress string
	ExplorerURL     string
	Symbol          string
	FiatRate        float64
	FiatCurrency    string
}

type TTLs struct {
	Default time.Duration
	Staging time.Duration
	Status  time.Duration
	Lock    time.Duration
}

type Manager struct {
	store    cache.Store
	gateway  gateway.Gateway
	notifier events.Notifier
	logger   *slog.Logger
	stats    *Stats

	chain            ChainConfig
	ttls             TTLs
	propagationDelay time.Duration
	pollInterval     time.Duration
	lookupTimeout    time.Duration
	maxDataSize      int
	validateCallback func(url string) error

	now    func() time.Time
	jitter func(max time.Duration) time.Duration

	tracingEnabled    bool
	tracingAttributes []attribute.KeyValue
}

func WithLogger(logger *slog.Logger) func(*Manager) {
	return func(m *Manager) {
		m.logger = logger.With(slog.String("module", "timestamp"))
	}
}

func WithNotifier(notifier events.Notifier) func(*Manager) {
	return func(m *Manager) {
		m.notifier = notifier
	}
}

func WithStats(stats *Stats) func(*Manager) {
	return func(m *Manager) {
		m.stats = stats
	}
}

func WithChain(chain ChainConfig) func(*Manager) {
	return func(m *Manager) {
		m.chain = chain
	}
}

// WithTTLs overrides the non-zero TTLs.
func WithTTLs(ttls TTLs) func(*Manager) {
	return func(m *Manager) {
		if ttls.Default > 0 {
			m.ttls.Default = ttls.Default
		}
		if ttls.Staging > 0 {
			m.ttls.Staging = ttls.Staging
		}
		if ttls.Status > 0 {
			m.ttls.Status = ttls.Status
		}
		if ttls.Lock > 0 {
			m.ttls.Lock = ttls.Lock
		}
	}
}

func WithPropagationDelay(d time.Duration) func(*Manager) {
	return func(m *Manager) {
		m.propagationDelay = d
	}
}

func WithPollInterval(d time.Duration) func(*Manager) {
	return func(m *Manager) {
		m.pollInterval = d
	}
}

func WithLookupTimeout(d time.Duration) func(*Manager) {
	return func(m *Manager) {
		m.lookupTimeout = d
	}
}

func WithMaxDataSize(n int) func(*Manager) {
	return func(m *Manager) {
		m.maxDataSize = n
	}
}

// WithCallbackValidator sets the check applied to caller supplied webhook URLs.
func WithCallbackValidator(validate func(url string) error) func(*Manager) {
	return func(m *Manager) {
		m.validateCallback = validate
	}
}

func WithNow(now func() time.Time) func(*Manager) {
	return func(m *Manager) {
		m.now = now
	}
}

func WithJitter(jitter func(max time.Duration) time.Duration) func(*Manager) {
	return func(m *Manager) {
		m.jitter = jitter
	}
}

func WithTracer(attr ...attribute.KeyValue) func(*Manager) {
	return func(m *Manager) {
		m.tracingEnabled = true
		m.tracingAttributes = tracing.CallerAttributes(append(m.tracingAttributes, attr...)...)
	}
}

func NewManager(store cache.Store, gw gateway.Gateway, opts ...func(*Manager)) *Manager {
	m := &Manager{
		store:    store,
		gateway:  gw,
		notifier: events.Nop{},
		logger:   slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
		chain: ChainConfig{
			GasLimit: DefaultGasLimit,
			Symbol:   "ETH",
		},
		ttls: TTLs{
			Default: DefaultTTL,
			Staging: DefaultStagingTTL,
			Status:  DefaultStatusTTL,
			Lock:    DefaultLockTTL,
		},
		propagationDelay: DefaultPropagationDelay,
		pollInterval:     DefaultPollInterval,
		lookupTimeout:    DefaultLookupTimeout,
		maxDataSize:      DefaultMaxDataSize,
		now:              time.Now,
		jitter:           func(time.Duration) time.Duration { return 0 },
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.chain.GasLimit == 0 {
		m.chain.GasLimit = DefaultGasLimit
	}

	return m
}

// GetRecord returns the TimestampRecord of dataHash.
func (m *Manager) GetRecord(ctx context.Context, dataHash string) (record *Record, err error) {
	ctx, span := tracing.StartTracing(ctx, "Manager_GetRecord", m.tracingEnabled, m.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	if err = validateDataHash(dataHash); err != nil {
		return nil, err
	}

	record, err = m.getRecord(ctx, dataHash)
	if err != nil {
		return nil, cacheUnavailable(err)
	}

	if record == nil {
		return nil, notFound("timestamp not found", ErrRecordNotFound).WithDetails(map[string]any{"dataHash": dataHash})
	}

	return record, nil
}

func (m *Manager) getRecord(ctx context.Context, dataHash string) (*Record, error) {
	var record Record

	found, err := getJSON(ctx, m.store, recordKey(dataHash), &record)
	if err != nil || !found {
		return nil, err
	}

	return &record, nil
}

func (m *Manager) putRecord(ctx context.Context, record *Record) error {
	return setJSON(ctx, m.store, recordKey(record.DataHash), record, m.ttls.Default)
}

func (m *Manager) explorerTxURL(txHash string) string {
	if m.chain.ExplorerURL == "" {
		return ""
	}

	return strings.TrimSuffix(m.chain.ExplorerURL, "/") + "/tx/" + txHash
}

func (m *Manager) emit(ctx context.Context, eventType events.Type, record *Record) {
	event := events.New(eventType, record.DataHash, m.now())
	event.TransactionHash = record.TransactionHash
	event.Status = string(record.Status)
	event.ExplorerURL = record.ExplorerURL
	event.Metadata = record.Metadata
	event.CallbackURL = record.WebhookURL
	if record.Block != nil {
		event.BlockNumber = record.Block.Number
	}

	m.notifier.Notify(ctx, event)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
