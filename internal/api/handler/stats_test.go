package handler

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewStats(t *testing.T) {
	t.Run("register, inc, unregister stats", func(t *testing.T) {
		// given
		sut, err := NewStats()
		require.NoError(t, err)
		defer sut.UnregisterStats()

		// when
		sut.incRequest("prepare")
		sut.incRequest("prepare")
		sut.incRequest("register")
		sut.incVerification(true)
		sut.incVerification(false)
		sut.incWaitTimeout()

		// then
		require.Equal(t, 2.0, testutil.ToFloat64(sut.apiRequests.WithLabelValues("prepare")))
		require.Equal(t, 1.0, testutil.ToFloat64(sut.apiRequests.WithLabelValues("register")))
		require.Equal(t, 1.0, testutil.ToFloat64(sut.apiVerifications.WithLabelValues("true")))
		require.Equal(t, 1.0, testutil.ToFloat64(sut.apiWaitTimeouts))
	})

	t.Run("register twice fails", func(t *testing.T) {
		// given
		first, err := NewStats()
		require.NoError(t, err)
		defer first.UnregisterStats()

		// when
		_, err = NewStats()

		// then
		require.ErrorIs(t, err, ErrFailedToRegisterStats)
	})

	t.Run("nil stats", func(t *testing.T) {
		var sut *Stats

		require.NotPanics(t, func() {
			sut.incRequest("prepare")
			sut.incVerification(true)
			sut.incWaitTimeout()
		})
	})
}
