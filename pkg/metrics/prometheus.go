package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	entriesStored    *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	insightsComputed *prometheus.CounterVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		entriesStored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyclesense_entries_stored_total",
				Help: "Total number of entries stored per backend",
			},
			[]string{"backend", "kind"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyclesense_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		insightsComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyclesense_insights_computed_total",
				Help: "Total number of insight sections computed",
			},
			[]string{"section"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cyclesense_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordEntryStored records an entry stored to a backend.
func (r *Recorder) RecordEntryStored(backend, kind string) {
	r.entriesStored.WithLabelValues(backend, kind).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordInsightComputed records a computed insight section.
func (r *Recorder) RecordInsightComputed(section string) {
	r.insightsComputed.WithLabelValues(section).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
