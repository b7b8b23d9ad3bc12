package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainstamp/chainstamp/internal/api/handler"
	"github.com/chainstamp/chainstamp/internal/api/handler/mocks"
	"github.com/chainstamp/chainstamp/pkg/api"
)

func TestHealth(t *testing.T) {
	healthy := handler.HealthCheck{Name: "cache", Check: func(_ context.Context) error { return nil }}
	unhealthy := handler.HealthCheck{Name: "gateway", Check: func(_ context.Context) error { return errors.New("dial tcp: connection refused") }}

	tt := []struct {
		name   string
		path   string
		checks []handler.HealthCheck

		expectedStatus  int
		expectedHealthy bool
		expectedChecks  map[string]string
	}{
		{
			name:   "health - all ok",
			path:   "/health",
			checks: []handler.HealthCheck{healthy},

			expectedStatus:  http.StatusOK,
			expectedHealthy: true,
			expectedChecks:  map[string]string{"cache": "ok"},
		},
		{
			name:   "health - gateway down",
			path:   "/health",
			checks: []handler.HealthCheck{healthy, unhealthy},

			expectedStatus:  http.StatusOK,
			expectedHealthy: false,
			expectedChecks:  map[string]string{"cache": "ok", "gateway": "unhealthy"},
		},
		{
			name:   "ready - gateway down",
			path:   "/health/ready",
			checks: []handler.HealthCheck{healthy, unhealthy},

			expectedStatus:  http.StatusServiceUnavailable,
			expectedHealthy: false,
			expectedChecks:  map[string]string{"cache": "ok", "gateway": "unhealthy"},
		},
		{
			name:   "ready - all ok",
			path:   "/health/ready",
			checks: []handler.HealthCheck{healthy},

			expectedStatus:  http.StatusOK,
			expectedHealthy: true,
			expectedChecks:  map[string]string{"cache": "ok"},
		},
		{
			name:   "live ignores dependencies",
			path:   "/health/live",
			checks: []handler.HealthCheck{unhealthy},

			expectedStatus:  http.StatusOK,
			expectedHealthy: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			sut := handler.NewDefault(&mocks.LifecycleMock{}, &mocks.VerifierMock{},
				handler.WithLogger(testLogger),
				handler.WithHealthChecks(tc.checks...),
			)
			e := newServer(sut, false)

			// when
			rec := doRequest(t, e, http.MethodGet, tc.path, "")

			// then
			require.Equal(t, tc.expectedStatus, rec.Code)

			var health api.Health
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
			require.Equal(t, tc.expectedHealthy, health.Healthy)
			require.Equal(t, tc.expectedChecks, health.Checks)
			if !tc.expectedHealthy {
				require.NotNil(t, health.Reason)
				require.Contains(t, *health.Reason, "connection refused")
			}
		})
	}
}
