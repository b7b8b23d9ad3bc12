package handler

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var ErrFailedToRegisterStats = errors.New("failed to register stats collector")

type Stats struct {
	apiRequests      *prometheus.CounterVec
	apiVerifications *prometheus.CounterVec
	apiWaitTimeouts  prometheus.Counter
}

func NewStats() (*Stats, error) {
	p := &Stats{
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chainstamp_api_timestamp_requests",
			Help: "Nr of successful timestamp requests by operation",
		}, []string{"operation"}),
		apiVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chainstamp_api_verifications",
			Help: "Nr of verified hashes by outcome",
		}, []string{"verified"}),
		apiWaitTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainstamp_api_wait_timeouts",
			Help: "Nr of wait requests which timed out before the transaction was final",
		}),
	}

	err := registerStats(
		p.apiRequests,
		p.apiVerifications,
		p.apiWaitTimeouts,
	)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Stats) incRequest(operation string) {
	if s != nil {
		s.apiRequests.WithLabelValues(operation).Inc()
	}
}

func (s *Stats) incVerification(verified bool) {
	if s != nil {
		s.apiVerifications.WithLabelValues(strconv.FormatBool(verified)).Inc()
	}
}

func (s *Stats) incWaitTimeout() {
	if s != nil {
		s.apiWaitTimeouts.Inc()
	}
}

func (s *Stats) UnregisterStats() {
	unregisterStats(
		s.apiRequests,
		s.apiVerifications,
		s.apiWaitTimeouts,
	)
}

func registerStats(cs ...prometheus.Collector) error {
	for _, c := range cs {
		err := prometheus.Register(c)
		if err != nil {
			return errors.Join(ErrFailedToRegisterStats, err)
		}
	}

	return nil
}

func unregisterStats(cs ...prometheus.Collector) {
	for _, c := range cs {
		_ = prometheus.Unregister(c)
	}
}
