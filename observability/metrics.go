// Package observability provides Prometheus metrics for the bridge and an
// sse.Observer that feeds them.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UpstreamBuckets covers time-to-headers for chat completion calls, 50ms to 60s.
var UpstreamBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

var (
	// CallsTotal counts translation calls by entry surface (http, transport) and outcome.
	CallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deltabridge_calls_total",
			Help: "Translation calls",
		},
		[]string{"surface", "outcome"},
	)

	// UpstreamRequestsTotal counts upstream responses by status code ("error" when no response).
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deltabridge_upstream_requests_total",
			Help: "Upstream requests",
		},
		[]string{"status"},
	)

	// UpstreamLatency records the time until upstream response headers arrive.
	UpstreamLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deltabridge_upstream_latency_seconds",
			Help:    "Upstream time to headers",
			Buckets: UpstreamBuckets,
		},
	)

	// EventsEmittedTotal counts message.delta events written downstream.
	EventsEmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "deltabridge_events_emitted_total",
			Help: "Emitted message.delta events",
		},
	)

	// FragmentsDroppedTotal counts upstream fragments dropped by reason.
	FragmentsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deltabridge_fragments_dropped_total",
			Help: "Dropped upstream fragments",
		},
		[]string{"reason"},
	)

	// SentinelsTotal counts data: [DONE] lines seen.
	SentinelsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "deltabridge_sentinels_total",
			Help: "Upstream [DONE] sentinels",
		},
	)

	// StreamsActive tracks recoded streams that are still open.
	StreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "deltabridge_streams_active",
			Help: "Active recoded streams",
		},
	)
)

func init() {
	prometheus.MustRegister(
		CallsTotal,
		UpstreamRequestsTotal,
		UpstreamLatency,
		EventsEmittedTotal,
		FragmentsDroppedTotal,
		SentinelsTotal,
		StreamsActive,
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
