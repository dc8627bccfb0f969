package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors of the web frontend. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	guardOutcomes    *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cinefront",
			Name:      "upstream_requests_total",
			Help:      "Catalog API requests by endpoint and result.",
		}, []string{"endpoint", "result"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cinefront",
			Name:      "upstream_request_duration_seconds",
			Help:      "Catalog API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		guardOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cinefront",
			Name:      "session_guard_outcomes_total",
			Help:      "Session guard decisions on page activation.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.upstreamRequests, m.upstreamDuration, m.guardOutcomes)
	return m
}

func (m *Metrics) ObserveUpstream(endpoint string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.upstreamRequests.WithLabelValues(endpoint, result).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (m *Metrics) GuardOutcome(outcome string) {
	if m == nil {
		return
	}
	m.guardOutcomes.WithLabelValues(outcome).Inc()
}
