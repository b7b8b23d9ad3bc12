package webhook

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var ErrFailedToRegisterStats = errors.New("failed to register stats collector")

type Stats struct {
	delivered prometheus.Counter
	failed    prometheus.Counter
	retries   prometheus.Counter
	dropped   prometheus.Counter
	queueSize prometheus.Gauge
}

func NewStats() (*Stats, error) {
	s := &Stats{
		delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainstamp_webhook_delivered_count",
			Help: "Number of webhooks delivered",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainstamp_webhook_failed_count",
			Help: "Number of webhooks which could not be delivered after all attempts",
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainstamp_webhook_retry_count",
			Help: "Number of webhook delivery retries",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainstamp_webhook_dropped_count",
			Help: "Number of webhooks dropped because the queue was full or the dispatcher stopped",
		}),
		queueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chainstamp_webhook_queue_size",
			Help: "Number of webhooks waiting for delivery",
		}),
	}

	err := registerStats(s.delivered, s.failed, s.retries, s.dropped, s.queueSize)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Stats) UnregisterStats() {
	unregisterStats(s.delivered, s.failed, s.retries, s.dropped, s.queueSize)
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

func (s *Stats) incDelivered() {
	if s != nil {
		s.delivered.Inc()
	}
}

func (s *Stats) incFailed() {
	if s != nil {
		s.failed.Inc()
	}
}

func (s *Stats) incRetries() {
	if s != nil {
		s.retries.Inc()
	}
}

func (s *Stats) incDropped() {
	if s != nil {
		s.dropped.Inc()
	}
}

func (s *Stats) setQueueSize(n int) {
	if s != nil {
		s.queueSize.Set(float64(n))
	}
}
