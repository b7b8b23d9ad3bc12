package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/chainstamp/chainstamp/internal/timestamp"
	"github.com/chainstamp/chainstamp/internal/verification"
)

const (
	maxWaitTimeoutDefault = 60 * time.Second
	waitTimeoutDefault    = 30 * time.Second
	maxDataSizeDefault    = timestamp.DefaultMaxDataSize
)

type Lifecycle interface {
	Prepare(ctx context.Context, req timestamp.PrepareRequest) (*timestamp.PreparedTransaction, error)
	Register(ctx context.Context, req timestamp.RegisterRequest) (*timestamp.Record, error)
	GetStatus(ctx context.Context, txHash string) (*timestamp.TransactionStatus, error)
	WaitForCompletion(ctx context.Context, txHash string, timeout time.Duration) (*timestamp.CompletionResult, error)
	GetRecord(ctx context.Context, dataHash string) (*timestamp.Record, error)
}

type Verifier interface {
	VerifyByHash(ctx context.Context, dataHash string) (*verification.Result, error)
	VerifyData(ctx context.Context, raw json.RawMessage) (*verification.Result, error)
	VerifyBatch(ctx context.Context, hashes []string) (*verification.BatchResult, error)
}

// HealthCheck reports a dependency the API needs to serve requests.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type DefaultHandler struct {
	lifecycle Lifecycle
	verifier  Verifier

	logger            *slog.Logger
	now               func() time.Time
	checks            []HealthCheck
	healthTimeout     time.Duration
	maxDataSize       int
	maxWaitTimeout    time.Duration
	stats             *Stats
	tracingEnabled    bool
	tracingAttributes []attribute.KeyValue
}

func WithLogger(logger *slog.Logger) func(*DefaultHandler) {
	return func(h *DefaultHandler) {
		h.logger = logger.With(slog.String("module", "api"))
	}
}

func WithNow(nowFunc func() time.Time) func(*DefaultHandler) {
	return func(h *DefaultHandler) {
		h.now = nowFunc
	}
}

func WithHealthChecks(checks ...HealthCheck) func(*DefaultHandler) {
	return func(h *DefaultHandler) {
		h.checks = append(h.checks, checks...)
	}
}

func WithMaxDataSize(n int) func(*DefaultHandler) {
	return func(h *DefaultHandler) {
		if n > 0 {
			h.maxDataSize = n
		}
	}
}

func WithMaxWaitTimeout(d time.Duration) func(*DefaultHandler) {
	return func(h *DefaultHandler) {
		if d > 0 {
			h.maxWaitTimeout = d
		}
	}
}

func WithStats(stats *Stats) func(*DefaultHandler) {
	return func(h *DefaultHandler) {
		h.stats = stats
	}
}

func WithTracer(attr ...attribute.KeyValue) func(*DefaultHandler) {
	return func(h *DefaultHandler) {
		h.tracingEnabled = true
		if len(attr) > 0 {
			h.tracingAttributes = append(h.tracingAttributes, attr...)
		}
		_, file, _, ok := runtime.Caller(1)
		if ok {
			h.tracingAttributes = append(h.tracingAttributes, attribute.String("file", file))
		}
	}
}

type Option func(h *DefaultHandler)

func NewDefault(lifecycle Lifecycle, verifier Verifier, opts ...Option) *DefaultHandler {
	h := &DefaultHandler{
		lifecycle:      lifecycle,
		verifier:       verifier,
		logger:         slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(slog.String("module", "api")),
		now:            time.Now,
		healthTimeout:  5 * time.Second,
		maxDataSize:    maxDataSizeDefault,
		maxWaitTimeout: maxWaitTimeoutDefault,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// RegisterHandlers mounts the API under basePath. Health routes are public,
// the middlewares in protected apply to every other route.
func RegisterHandlers(e *echo.Echo, basePath string, h *DefaultHandler, protected ...echo.MiddlewareFunc) {
	g := e.Group(basePath)

	g.GET("/health", h.GETHealth)
	g.GET("/health/live", h.GETLive)
	g.GET("/health/ready", h.GETReady)

	p := g.Group("", protected...)

	p.POST("/hash", h.POSTHash)
	p.POST("/timestamp/prepare", h.POSTPrepare)
	p.POST("/timestamp/register", h.POSTRegister)
	p.GET("/timestamp/:hash", h.GETTimestamp)
	p.GET("/transaction/:txHash/status", h.GETTransactionStatus)
	p.GET("/transaction/:txHash/wait", h.GETTransactionWait)
	p.GET("/verify/:hash", h.GETVerify)
	p.POST("/verify", h.POSTVerify)
	p.POST("/verify/batch", h.POSTVerifyBatch)
}

// bind decodes the JSON body into req and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}

	return c.Validate(req)
}
