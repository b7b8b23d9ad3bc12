package webhook_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainstamp/chainstamp/internal/webhook"
)

type recordingTimer struct {
	mu     sync.Mutex
	delays []time.Duration
	c      chan time.Time
}

func (r *recordingTimer) Start(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.delays = append(r.delays, d)
	r.c = make(chan time.Time, 1)
	r.c <- time.Now()
}

func (r *recordingTimer) Stop() {}

func (r *recordingTimer) C() <-chan time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.c
}

func (r *recordingTimer) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.delays
}

var noJitter = func(time.Duration) time.Duration { return 0 }

func TestHTTPSender_Send(t *testing.T) {
	tt := []struct {
		name          string
		failures      int32
		status        int
		retryAttempts int

		expectedOK       bool
		expectedAttempts int
		expectedDelays   []time.Duration
	}{
		{
			name:             "delivered on first attempt",
			status:           http.StatusInternalServerError,
			retryAttempts:    5,
			expectedOK:       true,
			expectedAttempts: 1,
		},
		{
			name:             "delivered after two failures",
			failures:         2,
			status:           http.StatusServiceUnavailable,
			retryAttempts:    5,
			expectedOK:       true,
			expectedAttempts: 3,
			expectedDelays:   []time.Duration{time.Second, 2 * time.Second},
		},
		{
			name:             "always 500 stops after all attempts",
			failures:         1000,
			status:           http.StatusInternalServerError,
			retryAttempts:    5,
			expectedOK:       false,
			expectedAttempts: 5,
			expectedDelays:   []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second},
		},
		{
			name:             "single attempt",
			failures:         1000,
			status:           http.StatusBadGateway,
			retryAttempts:    1,
			expectedOK:       false,
			expectedAttempts: 1,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var hits atomic.Int32
			var (
				mu   sync.Mutex
				body []byte
			)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				body, _ = io.ReadAll(r.Body)
				mu.Unlock()
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json; charset=UTF-8", r.Header.Get("Content-Type"))

				if hits.Add(1) <= tc.failures {
					w.WriteHeader(tc.status)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			timer := &recordingTimer{}
			sut := webhook.NewSender(server.Client(),
				webhook.WithRetryAttempts(tc.retryAttempts),
				webhook.WithDelays(time.Second, 4*time.Second),
				webhook.WithJitter(noJitter),
				webhook.WithTimer(timer),
				webhook.WithSenderLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			)

			// when
			ok, attempts := sut.Send(context.Background(), server.URL, []byte(`{"type":"timestamp.confirmed"}`))

			// then
			require.Equal(t, tc.expectedOK, ok)
			require.Equal(t, tc.expectedAttempts, attempts)
			require.Equal(t, int32(tc.expectedAttempts), hits.Load())
			require.Equal(t, tc.expectedDelays, timer.Delays())
			mu.Lock()
			defer mu.Unlock()
			require.JSONEq(t, `{"type":"timestamp.confirmed"}`, string(body))
		})
	}
}

func TestHTTPSender_Send_MalformedURL(t *testing.T) {
	timer := &recordingTimer{}
	sut := webhook.NewSender(nil, webhook.WithRetryAttempts(5), webhook.WithTimer(timer))

	ok, attempts := sut.Send(context.Background(), "http://bad host/\x7f", nil)

	require.False(t, ok)
	require.Equal(t, 1, attempts)
	require.Empty(t, timer.Delays())
}

func TestHTTPSender_Send_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sut := webhook.NewSender(server.Client(), webhook.WithRetryAttempts(5), webhook.WithDelays(time.Millisecond, time.Millisecond))

	ok, attempts := sut.Send(ctx, server.URL, []byte(`{}`))

	require.False(t, ok)
	require.LessOrEqual(t, attempts, 1)
}
