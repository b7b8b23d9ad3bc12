// Package verification answers whether a data hash was timestamped by this
// service. It never searches the chain: a hash without a record is reported
// as unverified.
package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/chainstamp/chainstamp/internal/cache"
	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/internal/hashing"
	"github.com/chainstamp/chainstamp/internal/timestamp"
	"github.com/chainstamp/chainstamp/pkg/tracing"
)

const (
	DefaultTTL          = time.Hour
	DefaultMaxBatchSize = 50
	DefaultConcurrency  = 10

	verificationKeyPrefix = "verification:"
)

type Source string

const (
	// SourceCache is a previously verified result.
	SourceCache Source = "cache"
	// SourceRecord is a TimestampRecord of this service.
	SourceRecord Source = "record"
	// SourceBlockchain marks hashes without a record.
	SourceBlockchain Source = "blockchain"
)

type RecordReader interface {
	GetRecord(ctx context.Context, dataHash string) (*timestamp.Record, error)
}

type Result struct {
	DataHash        string                    `json:"dataHash"`
	Verified        bool                      `json:"verified"`
	Source          Source                    `json:"source"`
	Status          timestamp.RecordStatus    `json:"status,omitempty"`
	TransactionHash string                    `json:"transactionHash,omitempty"`
	Block           *timestamp.BlockReference `json:"block,omitempty"`
	ExplorerURL     string                    `json:"explorerUrl,omitempty"`
	Metadata        map[string]any            `json:"metadata,omitempty"`
	SubmittedAt     *time.Time                `json:"submittedAt,omitempty"`
	ConfirmedAt     *time.Time                `json:"confirmedAt,omitempty"`
	VerifiedAt      time.Time                 `json:"verifiedAt"`
	Error           string                    `json:"error,omitempty"`
}

type BatchSummary struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Failed   int `json:"failed"`
	NotFound int `json:"notFound"`
}

type BatchResult struct {
	Results []Result     `json:"results"`
	Summary BatchSummary `json:"summary"`
}

type Engine struct {
	store        cache.Store
	records      RecordReader
	logger       *slog.Logger
	ttl          time.Duration
	maxBatchSize int
	concurrency  int
	now          func() time.Time

	tracingEnabled    bool
	tracingAttributes []attribute.KeyValue
}

func WithLogger(logger *slog.Logger) func(*Engine) {
	return func(e *Engine) {
		e.logger = logger.With(slog.String("module", "verification"))
	}
}

func WithTTL(ttl time.Duration) func(*Engine) {
	return func(e *Engine) {
		e.ttl = ttl
	}
}

func WithMaxBatchSize(n int) func(*Engine) {
	return func(e *Engine) {
		e.maxBatchSize = n
	}
}

func WithConcurrency(n int) func(*Engine) {
	return func(e *Engine) {
		e.concurrency = n
	}
}

func WithNow(now func() time.Time) func(*Engine) {
	return func(e *Engine) {
		e.now = now
	}
}

func WithTracer(attr ...attribute.KeyValue) func(*Engine) {
	return func(e *Engine) {
		e.tracingEnabled = true
		e.tracingAttributes = tracing.CallerAttributes(append(e.tracingAttributes, attr...)...)
	}
}

func NewEngine(store cache.Store, records RecordReader, opts ...func(*Engine)) *Engine {
	e := &Engine{
		store:        store,
		records:      records,
		logger:       slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
		ttl:          DefaultTTL,
		maxBatchSize: DefaultMaxBatchSize,
		concurrency:  DefaultConcurrency,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.concurrency < 1 {
		e.concurrency = 1
	}

	return e
}

// VerifyByHash never fails for unknown hashes. It fails for malformed hashes
// and when the cache cannot be read.
func (e *Engine) VerifyByHash(ctx context.Context, dataHash string) (result *Result, err error) {
	ctx, span := tracing.StartTracing(ctx, "Engine_VerifyByHash", e.tracingEnabled, e.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	if !hashing.IsValidHash(dataHash) {
		return nil, errs.New(errs.KindValidation, "hash must be 64 lowercase hex characters").WithDetails(map[string]any{"field": "hash", "value": dataHash})
	}

	result, err = e.verify(ctx, dataHash)
	if err != nil {
		return nil, errs.Wrap(errs.KindServiceUnavailable, "cache unavailable", err)
	}

	return result, nil
}

// VerifyData hashes raw the same way Prepare does and verifies the hash.
func (e *Engine) VerifyData(ctx context.Context, raw json.RawMessage) (*Result, error) {
	dataHash, err := hashing.HashData(raw)
	if err != nil {
		if errors.Is(err, hashing.ErrEmptyData) || errors.Is(err, hashing.ErrInvalidJSON) {
			return nil, errs.Wrap(errs.KindValidation, "invalid data", err).WithDetails(map[string]any{"field": "data"})
		}
		return nil, errs.Wrap(errs.KindInternal, "failed to hash data", err)
	}

	return e.VerifyByHash(ctx, dataHash)
}

// VerifyBatch validates every hash before looking any of them up. Lookups run
// concurrently. Results keep the order of hashes and a failed lookup only
// affects its own item.
func (e *Engine) VerifyBatch(ctx context.Context, hashes []string) (batch *BatchResult, err error) {
	ctx, span := tracing.StartTracing(ctx, "Engine_VerifyBatch", e.tracingEnabled, e.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	if len(hashes) == 0 || len(hashes) > e.maxBatchSize {
		return nil, errs.Newf(errs.KindValidation, "batch must contain between 1 and %d hashes", e.maxBatchSize).WithDetails(map[string]any{
			"field":        "hashes",
			"count":        len(hashes),
			"maxBatchSize": e.maxBatchSize,
		})
	}

	var invalid []map[string]any
	for i, h := range hashes {
		if !hashing.IsValidHash(h) {
			invalid = append(invalid, map[string]any{"index": i, "value": h})
		}
	}
	if len(invalid) > 0 {
		return nil, errs.New(errs.KindValidation, "batch contains malformed hashes").WithDetails(map[string]any{
			"field":   "hashes",
			"invalid": invalid,
		})
	}

	results := make([]Result, len(hashes))

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)

	for i, h := range hashes {
		g.Go(func() error {
			res, lookupErr := e.verify(ctx, h)
			if lookupErr != nil {
				e.logger.WarnContext(ctx, "Verification lookup failed", slog.String("hash", h), slog.String("err", lookupErr.Error()))
				results[i] = Result{
					DataHash:   h,
					Source:     SourceBlockchain,
					VerifiedAt: e.now().UTC(),
					Error:      "verification lookup failed",
				}
				return nil
			}

			results[i] = *res
			return nil
		})
	}

	_ = g.Wait()

	batch = &BatchResult{
		Results: results,
		Summary: BatchSummary{Total: len(results)},
	}

	for _, r := range results {
		switch {
		case r.Error != "":
			batch.Summary.Failed++
		case r.Verified:
			batch.Summary.Verified++
		default:
			batch.Summary.NotFound++
		}
	}

	return batch, nil
}

func (e *Engine) verify(ctx context.Context, dataHash string) (*Result, error) {
	b, err := e.store.Get(ctx, verificationKeyPrefix+dataHash)
	switch {
	case err == nil:
		var cached Result
		if jsonErr := json.Unmarshal(b, &cached); jsonErr == nil {
			cached.Source = SourceCache
			return &cached, nil
		}
	case !errors.Is(err, cache.ErrCacheNotFound):
		return nil, err
	}

	now := e.now().UTC()

	record, err := e.records.GetRecord(ctx, dataHash)
	if err != nil {
		if errors.Is(err, timestamp.ErrRecordNotFound) {
			return &Result{DataHash: dataHash, Source: SourceBlockchain, VerifiedAt: now}, nil
		}
		return nil, err
	}

	submittedAt := record.SubmittedAt
	result := &Result{
		DataHash:        dataHash,
		Verified:        record.Status == timestamp.RecordStatusConfirmed,
		Source:          SourceRecord,
		Status:          record.Status,
		TransactionHash: record.TransactionHash,
		Block:           record.Block,
		ExplorerURL:     record.ExplorerURL,
		Metadata:        record.Metadata,
		SubmittedAt:     &submittedAt,
		ConfirmedAt:     record.ConfirmedAt,
		VerifiedAt:      now,
	}

	if result.Verified {
		if err := e.cacheResult(ctx, result); err != nil {
			e.logger.WarnContext(ctx, "Failed to cache verification", slog.String("hash", dataHash), slog.String("err", err.Error()))
		}
	}

	return result, nil
}

func (e *Engine) cacheResult(ctx context.Context, result *Result) error {
	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal verification: %w", err)
	}

	return e.store.Set(ctx, verificationKeyPrefix+result.DataHash, b, e.ttl)
}
