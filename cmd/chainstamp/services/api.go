package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/chainstamp/chainstamp/config"
	"github.com/chainstamp/chainstamp/internal/api/handler"
	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/internal/events"
	"github.com/chainstamp/chainstamp/internal/gateway"
	chainstampLogger "github.com/chainstamp/chainstamp/internal/logger"
	"github.com/chainstamp/chainstamp/internal/timestamp"
	"github.com/chainstamp/chainstamp/internal/verification"
	"github.com/chainstamp/chainstamp/internal/webhook"
	"github.com/chainstamp/chainstamp/pkg/api"
	"github.com/chainstamp/chainstamp/pkg/tracing"
)

const (
	dialTimeout = 10 * time.Second
	bodyLimit   = "1M"
)

// StartAPIServer wires the lifecycle manager, the verification engine and the
// webhook dispatcher behind the HTTP API and starts serving. The returned
// function stops everything in reverse order of creation.
func StartAPIServer(logger *slog.Logger, cfg *config.ChainstampConfig) (func(), error) {
	logger = logger.With(slog.String("service", "api"))
	logger.Info("Starting")

	var (
		echoServer        *echo.Echo
		tracingAttributes []attribute.KeyValue
		err               error
	)

	shutdownFns := make([]func(), 0)
	stopFn := func() {
		logger.Info("Shutting down api")
		disposeAPI(logger, echoServer, shutdownFns)
		logger.Info("Shutdown complete")
	}

	if cfg.IsTracingEnabled() {
		cleanup, attrs, err := tracing.Enable(logger, "chainstamp-api", cfg.Tracing.DialAddr, cfg.Tracing.Sample, cfg.Tracing.Attributes)
		if err != nil {
			logger.Error("failed to enable tracing", slog.String("err", err.Error()))
		} else {
			shutdownFns = append(shutdownFns, cleanup)
			tracingAttributes = attrs
		}
	}

	store, closeStore, err := NewCacheStore(cfg.Cache)
	if err != nil {
		stopFn()
		return nil, fmt.Errorf("failed to create cache store: %w", err)
	}
	shutdownFns = append(shutdownFns, closeStore)

	gw, err := newGateway(logger, cfg, tracingAttributes)
	if err != nil {
		stopFn()
		return nil, err
	}
	shutdownFns = append(shutdownFns, gw.Close)
	cachedGateway := gateway.NewCached(gw)

	var (
		timestampStats *timestamp.Stats
		webhookStats   *webhook.Stats
		handlerStats   *handler.Stats
	)
	if cfg.Prometheus.IsEnabled() {
		timestampStats, webhookStats, handlerStats, err = newStats()
		if err != nil {
			stopFn()
			return nil, err
		}
		shutdownFns = append(shutdownFns, timestampStats.UnregisterStats, webhookStats.UnregisterStats, handlerStats.UnregisterStats)
	}

	notifiers := events.Multi{}
	healthChecks := []handler.HealthCheck{
		{Name: "cache", Check: store.Health},
		{Name: "gateway", Check: cachedGateway.Health},
	}

	if cfg.Webhook.Enabled {
		dispatcher := newDispatcher(logger, cfg, webhookStats)
		dispatcher.Start()
		shutdownFns = append(shutdownFns, func() { dispatcher.GracefulStop(cfg.Webhook.ShutdownTimeout) })

		notifiers = append(notifiers, dispatcher)
		healthChecks = append(healthChecks, handler.HealthCheck{
			Name:  "webhook",
			Check: func(_ context.Context) error { return dispatcher.Health() },
		})
	}

	if cfg.MessageQueue != nil && cfg.MessageQueue.URL != "" {
		nc, err := events.NewNatsConnection(cfg.MessageQueue.URL, logger)
		if err != nil {
			stopFn()
			return nil, fmt.Errorf("failed to connect to message queue: %w", err)
		}

		publisher := events.NewNatsPublisher(nc, cfg.MessageQueue.SubjectPrefix, events.WithLogger(logger))
		shutdownFns = append(shutdownFns, publisher.Shutdown)
		notifiers = append(notifiers, publisher)
	}

	gasPrice, err := cfg.Chain.GasPriceWei()
	if err != nil {
		stopFn()
		return nil, err
	}

	mgrOpts := []func(*timestamp.Manager){
		timestamp.WithLogger(logger),
		timestamp.WithNotifier(notifiers),
		timestamp.WithStats(timestampStats),
		timestamp.WithChain(timestamp.ChainConfig{
			ChainID:         cfg.Chain.ChainID,
			GasLimit:        cfg.Chain.GasLimit,
			GasPrice:        gasPrice,
			ReceiverAddress: cfg.Chain.ReceiverAddress,
			ExplorerURL:     cfg.Chain.ExplorerURL,
			Symbol:          cfg.Chain.Symbol,
			FiatRate:        cfg.Chain.FiatRate,
			FiatCurrency:    cfg.Chain.FiatCurrency,
		}),
		timestamp.WithTTLs(timestamp.TTLs{
			Default: cfg.Cache.DefaultTTL,
			Staging: cfg.Cache.StagingTTL,
			Status:  cfg.Cache.StatusTTL,
			Lock:    cfg.Cache.LockTTL,
		}),
		timestamp.WithPropagationDelay(cfg.Chain.PropagationDelay),
		timestamp.WithPollInterval(cfg.Chain.PollInterval),
		timestamp.WithLookupTimeout(cfg.Chain.LookupTimeout),
		timestamp.WithMaxDataSize(cfg.API.MaxDataSize),
		timestamp.WithJitter(webhook.Jitter),
		timestamp.WithCallbackValidator(func(u string) error {
			return webhook.ValidateURL(u, cfg.IsProduction())
		}),
	}

	engineOpts := []func(*verification.Engine){
		verification.WithLogger(logger),
		verification.WithTTL(cfg.Cache.VerificationTTL),
		verification.WithMaxBatchSize(cfg.API.MaxBatchSize),
	}

	apiOpts := []handler.Option{
		handler.WithLogger(logger),
		handler.WithStats(handlerStats),
		handler.WithMaxDataSize(cfg.API.MaxDataSize),
		handler.WithMaxWaitTimeout(cfg.API.MaxWaitTimeout),
		handler.WithHealthChecks(healthChecks...),
	}

	if cfg.IsTracingEnabled() {
		mgrOpts = append(mgrOpts, timestamp.WithTracer(tracingAttributes...))
		engineOpts = append(engineOpts, verification.WithTracer(tracingAttributes...))
		apiOpts = append(apiOpts, handler.WithTracer(tracingAttributes...))
	}

	manager := timestamp.NewManager(store, cachedGateway, mgrOpts...)
	engine := verification.NewEngine(store, manager, engineOpts...)
	defaultHandler := handler.NewDefault(manager, engine, apiOpts...)

	echoServer = setAPIEcho(logger, cfg)
	handler.RegisterHandlers(echoServer, cfg.API.BasePath, defaultHandler, protectedMiddleware(logger, cfg.API)...)

	go func() {
		logger.Info("Starting API server", slog.String("address", cfg.API.Address))
		err := echoServer.Start(cfg.API.Address)
		if err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logger.Info("API http server closed")
				return
			}

			logger.Error("Failed to start API server", slog.String("err", err.Error()))
			return
		}
	}()

	return stopFn, nil
}

func newGateway(logger *slog.Logger, cfg *config.ChainstampConfig, tracingAttributes []attribute.KeyValue) (*gateway.EVMClient, error) {
	opts := []func(*gateway.EVMClient){gateway.WithLogger(logger)}
	if cfg.IsTracingEnabled() {
		opts = append(opts, gateway.WithTracer(tracingAttributes...))
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	gw, err := gateway.DialEVM(ctx, cfg.Chain.RPCURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain node: %w", err)
	}

	return gw, nil
}

func newStats() (*timestamp.Stats, *webhook.Stats, *handler.Stats, error) {
	timestampStats, err := timestamp.NewStats()
	if err != nil {
		return nil, nil, nil, err
	}

	webhookStats, err := webhook.NewStats()
	if err != nil {
		timestampStats.UnregisterStats()
		return nil, nil, nil, err
	}

	handlerStats, err := handler.NewStats()
	if err != nil {
		timestampStats.UnregisterStats()
		webhookStats.UnregisterStats()
		return nil, nil, nil, err
	}

	return timestampStats, webhookStats, handlerStats, nil
}

func newDispatcher(logger *slog.Logger, cfg *config.ChainstampConfig, stats *webhook.Stats) *webhook.Dispatcher {
	sender := webhook.NewSender(&http.Client{Timeout: cfg.Webhook.Timeout},
		webhook.WithRetryAttempts(cfg.Webhook.RetryAttempts),
		webhook.WithDelays(cfg.Webhook.BaseDelay, cfg.Webhook.MaxDelay),
		webhook.WithSenderLogger(logger),
		webhook.WithSenderStats(stats),
	)

	return webhook.NewDispatcher(sender,
		webhook.WithLogger(logger),
		webhook.WithWorkers(cfg.Webhook.Workers),
		webhook.WithQueueSize(cfg.Webhook.QueueSize),
		webhook.WithProduction(cfg.IsProduction()),
		webhook.WithStats(stats),
	)
}

func setAPIEcho(logger *slog.Logger, cfg *config.ChainstampConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger, cfg.IsProduction())

	// Recover returns a middleware which recovers from panics anywhere in the chain
	e.Use(echomiddleware.Recover())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, api.APIKeyHeader},
	}))

	e.Use(eventIDMiddleware)

	e.Use(otelecho.Middleware("chainstamp-api"))

	e.Use(logRequestMiddleware(logger, cfg.API.RequestExtendedLogs))

	if cfg.Prometheus.IsEnabled() {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem: "api",
			HistogramOptsFunc: func(opts prometheus.HistogramOpts) prometheus.HistogramOpts {
				if opts.Name == "request_duration_seconds" {
					opts.Buckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30, 60}
				}
				return opts
			},
		}))
	}

	e.Use(echomiddleware.BodyLimit(bodyLimit))

	if cfg.API.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
			// wait has its own upper bound
			Skipper: func(c echo.Context) bool {
				return strings.HasSuffix(c.Path(), "/wait")
			},
			Timeout: cfg.API.RequestTimeout,
		}))
	}

	if cfg.API.RateLimit.IsEnabled() {
		e.Use(rateLimiter(cfg.API.RateLimit))
	}

	return e
}

// eventIDMiddleware stores a fresh event id in the request context. The logger
// adds it to every record logged with that context.
func eventIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		eventID := uuid.New().String()

		//nolint:staticcheck // the logger reads the string key
		reqCtx := context.WithValue(req.Context(), chainstampLogger.EventIDField, eventID)
		c.SetRequest(req.WithContext(reqCtx))
		c.Response().Header().Set(echo.HeaderXRequestID, eventID)

		return next(c)
	}
}

func rateLimiter(cfg *config.RateLimitConfig) echo.MiddlewareFunc {
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Skipper: isHealthRoute,
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RequestsPerSecond),
			Burst:     cfg.Burst,
			ExpiresIn: cfg.ExpiresIn,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return errs.Wrap(errs.KindInternal, "failed to identify client", err)
		},
		DenyHandler: func(_ echo.Context, identifier string, err error) error {
			return errs.Wrap(errs.KindRateLimited, "rate limit exceeded", err).WithDetails(map[string]any{"client": identifier})
		},
	})
}

// protectedMiddleware requires one of the configured API keys. Without keys
// the API is open, which Load only allows outside of production.
func protectedMiddleware(logger *slog.Logger, cfg *config.APIConfig) []echo.MiddlewareFunc {
	if len(cfg.APIKeys) == 0 {
		logger.Warn("no api keys configured, api is not authenticated")
		return nil
	}

	return []echo.MiddlewareFunc{
		echomiddleware.KeyAuthWithConfig(echomiddleware.KeyAuthConfig{
			KeyLookup: "header:" + api.APIKeyHeader,
			Validator: apiKeyValidator(cfg.APIKeys),
			ErrorHandler: func(err error, _ echo.Context) error {
				return errs.Wrap(errs.KindUnauthorized, "missing or invalid api key", err)
			},
		}),
	}
}

func apiKeyValidator(keys []string) echomiddleware.KeyAuthValidator {
	return func(key string, _ echo.Context) (bool, error) {
		valid := false
		for _, k := range keys {
			// every key is compared so the time taken does not depend on which one matches
			if subtle.ConstantTimeCompare([]byte(key), []byte(k)) == 1 {
				valid = true
			}
		}

		return valid, nil
	}
}

func isHealthRoute(c echo.Context) bool {
	return slices.ContainsFunc([]string{"/health", "/health/live", "/health/ready"}, func(suffix string) bool {
		return strings.HasSuffix(c.Path(), suffix)
	})
}

func logRequestMiddleware(logger *slog.Logger, extendLog bool) echo.MiddlewareFunc {
	if extendLog {
		return echomiddleware.RequestLoggerWithConfig(extendRequestLogConfig(logger))
	}

	return echomiddleware.RequestLoggerWithConfig(requestLogConfig(logger))
}

func disposeAPI(logger *slog.Logger, echoServer *echo.Echo, shutdownFns []func()) {
	if echoServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := echoServer.Shutdown(ctx); err != nil {
			logger.Error("Failed to close API echo server", slog.String("err", err.Error()))
		}
	}

	for i := len(shutdownFns) - 1; i >= 0; i-- {
		shutdownFns[i]()
	}
}

func requestLogConfig(logger *slog.Logger) echomiddleware.RequestLoggerConfig {
	return echomiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true, // forwards error to the global error handler, so it can decide appropriate status code
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ctx := c.Request().Context()

			if v.Error == nil {
				logger.InfoContext(ctx, "REQUEST",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
				)
			} else {
				logger.ErrorContext(ctx, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
				)
			}
			return nil
		},
	}
}

func extendRequestLogConfig(logger *slog.Logger) echomiddleware.RequestLoggerConfig {
	return echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogError:     true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		HandleError:  true, // forwards error to the global error handler, so it can decide appropriate status code
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ctx := c.Request().Context()

			if v.Error == nil {
				logger.InfoContext(ctx, "REQUEST",
					slog.String("verb", v.Method),
					slog.String("uri", v.URI),
					slog.String("remote_ip", v.RemoteIP),
					slog.String("user_agent", v.UserAgent),
					slog.Duration("latency", v.Latency),
					slog.Int("status", v.Status),
				)
			} else {
				logger.ErrorContext(ctx, "REQUEST_ERROR",
					slog.String("verb", v.Method),
					slog.String("uri", v.URI),
					slog.String("remote_ip", v.RemoteIP),
					slog.String("user_agent", v.UserAgent),
					slog.Duration("latency", v.Latency),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
				)
			}
			return nil
		},
	}
}
