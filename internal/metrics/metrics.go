package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Exploration outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeBusy     = "busy"
)

var (
	Explorations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_explorations_total",
			Help: "Total number of explorations by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travel_upstream_request_duration_seconds",
			Help:    "Duration of calls to geocoding, weather and POI APIs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	InFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "travel_explorations_in_flight",
			Help: "Number of explorations currently running",
		},
	)

	JournalFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_journal_failures_total",
			Help: "Total number of results a journal sink failed to record",
		},
		[]string{"sink"},
	)
)

// ObserveUpstream records how long a call to service took.
func ObserveUpstream(service string, start time.Time) {
	UpstreamDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}

func RecordOutcome(outcome string) {
	Explorations.WithLabelValues(outcome).Inc()
}
