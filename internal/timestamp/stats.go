package timestamp

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var ErrFailedToRegisterStats = errors.New("failed to register stats collector")

type Stats struct {
	prepared      prometheus.Counter
	registered    *prometheus.CounterVec
	reconciled    *prometheus.CounterVec
	statusLookups *prometheus.CounterVec
	waitTimeouts  prometheus.Counter
}

func NewStats() (*Stats, error) {
	s := &Stats{
		prepared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainstamp_prepared_count",
			Help: "Number of prepared transactions",
		}),
		registered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chainstamp_registered_count",
			Help: "Number of registered transactions by resulting record status",
		}, []string{"status"}),
		reconciled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chainstamp_reconciled_count",
			Help: "Number of pending records moved to a final status",
		}, []string{"status"}),
		statusLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chainstamp_status_lookup_count",
			Help: "Number of transaction status lookups by result",
		}, []string{"status", "cached"}),
		waitTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chainstamp_wait_timeout_count",
			Help: "Number of waits for completion which timed out",
		}),
	}

	for _, c := range []prometheus.Collector{s.prepared, s.registered, s.reconciled, s.statusLookups, s.waitTimeouts} {
		err := prometheus.Register(c)
		if err != nil {
			s.UnregisterStats()
			return nil, errors.Join(ErrFailedToRegisterStats, err)
		}
	}

	return s, nil
}

func (s *Stats) UnregisterStats() {
	for _, c := range []prometheus.Collector{s.prepared, s.registered, s.reconciled, s.statusLookups, s.waitTimeouts} {
		_ = prometheus.Unregister(c)
	}
}

func (s *Stats) incPrepared() {
	if s != nil {
		s.prepared.Inc()
	}
}

func (s *Stats) incRegistered(status RecordStatus) {
	if s != nil {
		s.registered.WithLabelValues(string(status)).Inc()
	}
}

func (s *Stats) incReconciled(status RecordStatus) {
	if s != nil {
		s.reconciled.WithLabelValues(string(status)).Inc()
	}
}

func (s *Stats) incStatusLookup(status TxStatus, cached bool) {
	if s == nil {
		return
	}

	c := "false"
	if cached {
		c = "true"
	}
	s.statusLookups.WithLabelValues(string(status), c).Inc()
}

func (s *Stats) incWaitTimeout() {
	if s != nil {
		s.waitTimeouts.Inc()
	}
}
