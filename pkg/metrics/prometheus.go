package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	samplesIngested *prometheus.CounterVec
	samplesEvicted  prometheus.Counter
	errorsTotal     *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	windowSize      prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		samplesIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divihub_samples_ingested_total",
				Help: "Total number of metric samples recorded into the window",
			},
			[]string{"category"},
		),
		samplesEvicted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "divihub_samples_evicted_total",
				Help: "Total number of samples evicted from the window",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divihub_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "divihub_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		windowSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "divihub_sample_window_size",
				Help: "Current number of samples held in the window",
			},
		),
	}
}

// RecordSampleIngested counts one recorded sample.
func (r *Recorder) RecordSampleIngested(category string) {
	r.samplesIngested.WithLabelValues(category).Inc()
}

// RecordEvicted counts samples removed by an eviction sweep.
func (r *Recorder) RecordEvicted(n int) {
	r.samplesEvicted.Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// SetWindowSize publishes the current window length.
func (r *Recorder) SetWindowSize(n int) {
	r.windowSize.Set(float64(n))
}
