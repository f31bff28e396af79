package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcomes recorded in gamecontest_search_requests_total.
const (
	outcomeHit   = "hit"
	outcomeMiss  = "miss"
	outcomeShort = "short"
	outcomeError = "error"
)

// Metrics instruments the search pipeline. A nil *Metrics records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	catalogDuration *prometheus.HistogramVec
	results         prometheus.Histogram
}

// NewMetrics registers the search metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamecontest_search_requests_total",
			Help: "Game searches by outcome.",
		}, []string{"outcome"}),
		catalogDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gamecontest_catalog_request_duration_seconds",
			Help:    "Latency of catalog API calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gamecontest_search_results",
			Help:    "Number of candidates returned per search.",
			Buckets: []float64{0, 1, 5, 10, 25, 40},
		}),
	}
	reg.MustRegister(m.requests, m.catalogDuration, m.results)
	return m
}

func (m *Metrics) observeOutcome(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeCatalog(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.catalogDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeResults(n int) {
	if m == nil {
		return
	}
	m.results.Observe(float64(n))
}
