package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("kind survives wrapping", func(t *testing.T) {
		// given
		cause := errors.New("dial tcp: connection refused")
		err := fmt.Errorf("prepare: %w", Wrap(KindServiceUnavailable, "cache unavailable", cause))

		// then
		assert.Equal(t, KindServiceUnavailable, KindOf(err))
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, New(KindServiceUnavailable, ""))
		assert.NotErrorIs(t, err, New(KindConflict, ""))
	})

	t.Run("details", func(t *testing.T) {
		// given
		err := New(KindConflict, "data already timestamped").WithDetails(map[string]any{"status": "confirmed"})

		// when
		e, ok := As(err)

		// then
		require.True(t, ok)
		assert.Equal(t, "confirmed", e.Details["status"])
		assert.Equal(t, "conflict: data already timestamped", err.Error())
	})

	t.Run("client errors", func(t *testing.T) {
		assert.True(t, New(KindValidation, "bad").ClientError())
		assert.True(t, New(KindRateLimited, "slow down").ClientError())
		assert.False(t, New(KindTimeout, "too slow").ClientError())
		assert.False(t, New(KindInternal, "boom").ClientError())
	})

	t.Run("unknown errors are internal", func(t *testing.T) {
		assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	})
}

func TestHTTPStatus(t *testing.T) {
	tt := []struct {
		kind           Kind
		expectedStatus int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindRateLimited, http.StatusTooManyRequests},
		{KindServiceUnavailable, http.StatusServiceUnavailable},
		{KindTimeout, http.StatusGatewayTimeout},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range tt {
		t.Run(string(tc.kind), func(t *testing.T) {
			status := HTTPStatus(tc.kind)
			assert.Equal(t, tc.expectedStatus, status)

			if tc.kind != KindInternal {
				assert.Equal(t, tc.kind, KindFromHTTPStatus(status))
			}
		})
	}
}
