// Package webhook delivers lifecycle events to caller-supplied HTTP endpoints.
// Delivery is best effort: failures are retried, then logged and counted.
package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/chainstamp/chainstamp/internal/version"
)

const (
	DefaultRetryAttempts = 3
	DefaultTimeout       = 10 * time.Second
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

type HTTPSender struct {
	httpClient    *http.Client
	logger        *slog.Logger
	retryAttempts int
	baseDelay     time.Duration
	maxDelay      time.Duration
	jitter        func(max time.Duration) time.Duration
	timer         backoff.Timer
	stats         *Stats
}

func WithRetryAttempts(n int) func(*HTTPSender) {
	return func(s *HTTPSender) {
		s.retryAttempts = n
	}
}

func WithDelays(base, max time.Duration) func(*HTTPSender) {
	return func(s *HTTPSender) {
		s.baseDelay = base
		s.maxDelay = max
	}
}

func WithJitter(jitter func(max time.Duration) time.Duration) func(*HTTPSender) {
	return func(s *HTTPSender) {
		s.jitter = jitter
	}
}

// WithTimer replaces the timer used to wait between attempts.
func WithTimer(timer backoff.Timer) func(*HTTPSender) {
	return func(s *HTTPSender) {
		s.timer = timer
	}
}

func WithSenderLogger(logger *slog.Logger) func(*HTTPSender) {
	return func(s *HTTPSender) {
		s.logger = logger.With(slog.String("module", "webhook-sender"))
	}
}

func WithSenderStats(stats *Stats) func(*HTTPSender) {
	return func(s *HTTPSender) {
		s.stats = stats
	}
}

func NewSender(httpClient *http.Client, opts ...func(*HTTPSender)) *HTTPSender {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	s := &HTTPSender{
		httpClient:    httpClient,
		logger:        slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
		retryAttempts: DefaultRetryAttempts,
		baseDelay:     DefaultBaseDelay,
		maxDelay:      DefaultMaxDelay,
		jitter:        Jitter,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.retryAttempts < 1 {
		s.retryAttempts = 1
	}

	return s
}

// Send posts payload to url until it is accepted, the attempts are used up or
// ctx is done. It reports whether delivery succeeded and how many attempts were made.
func (s *HTTPSender) Send(ctx context.Context, url string, payload []byte) (ok bool, attempts int) {
	operation := func() error {
		attempts++

		retry, err := s.post(ctx, url, payload)
		if err != nil && !retry {
			return backoff.Permanent(err)
		}

		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(&RetryBackOff{
		BaseDelay: s.baseDelay,
		MaxDelay:  s.maxDelay,
		Jitter:    s.jitter,
	}, uint64(s.retryAttempts-1)), ctx)

	notify := func(err error, next time.Duration) {
		s.stats.incRetries()
		s.logger.WarnContext(ctx, "Webhook delivery failed, retrying",
			slog.String("url", url),
			slog.Int("attempt", attempts),
			slog.String("next try", next.String()),
			slog.String("err", err.Error()))
	}

	err := backoff.RetryNotifyWithTimer(operation, policy, notify, s.timer)
	if err != nil {
		s.stats.incFailed()
		s.logger.WarnContext(ctx, "Couldn't deliver webhook",
			slog.String("url", url),
			slog.Int("attempts", attempts),
			slog.String("err", err.Error()))
		return false, attempts
	}

	s.stats.incDelivered()
	s.logger.InfoContext(ctx, "Webhook delivered", slog.String("url", url), slog.Int("attempts", attempts))

	return true, attempts
}

func (s *HTTPSender) post(ctx context.Context, url string, payload []byte) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return false, err
	}

	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("User-Agent", "chainstamp-webhook/"+version.Version)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return true, errors.Join(ErrUnexpectedStatus, fmt.Errorf("status code: %d", resp.StatusCode))
	}

	return false, nil
}
