// Prometheus metrics for the lruviz HTTP server.
package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the cache server.
//
// The cache itself stays metrics-free; the server observes operation
// outcomes from the outside and counts them here.
type Metrics struct {
	HitsTotal      prometheus.Counter
	MissesTotal    prometheus.Counter
	SetsTotal      prometheus.Counter
	DeletesTotal   prometheus.Counter
	EvictionsTotal prometheus.Counter
	ResetsTotal    prometheus.Counter

	Entries prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	return &Metrics{
		HitsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of get requests that found the key",
		}),
		MissesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of get requests that missed",
		}),
		SetsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_sets_total",
			Help:      "Total number of set requests",
		}),
		DeletesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_deletes_total",
			Help:      "Total number of delete requests",
		}),
		EvictionsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Total number of entries evicted to stay within capacity",
		}),
		ResetsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_resets_total",
			Help:      "Total number of reset requests",
		}),
		Entries: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Number of entries currently stored",
		}),
	}
}
