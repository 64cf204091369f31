package capture

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the capture engine.
type Metrics struct {
	Registry        *prometheus.Registry
	CapturesTotal   *prometheus.CounterVec
	CaptureDuration prometheus.Histogram
	BatchesTotal    prometheus.Counter
	LaunchFailures  prometheus.Counter
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	captures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webshotter_captures_total",
			Help: "Total capture tasks completed, by outcome status.",
		},
		[]string{"status"},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "webshotter_capture_duration_seconds",
			Help:    "Wall time per capture task, navigation through persist.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
	batches := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webshotter_batches_total",
			Help: "Total batches run to completion.",
		},
	)
	launchFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webshotter_launch_failures_total",
			Help: "Total batches aborted because the browser failed to start.",
		},
	)

	registry.MustRegister(captures, duration, batches, launchFailures)

	return &Metrics{
		Registry:        registry,
		CapturesTotal:   captures,
		CaptureDuration: duration,
		BatchesTotal:    batches,
		LaunchFailures:  launchFailures,
	}
}

// ObserveCapture records one finished capture task.
func (m *Metrics) ObserveCapture(status Status, d time.Duration) {
	if m == nil {
		return
	}
	m.CapturesTotal.WithLabelValues(status.String()).Inc()
	m.CaptureDuration.Observe(d.Seconds())
}

// IncBatches counts a batch that ran to completion.
func (m *Metrics) IncBatches() {
	if m == nil {
		return
	}
	m.BatchesTotal.Inc()
}

// IncLaunchFailures counts a batch aborted at browser launch.
func (m *Metrics) IncLaunchFailures() {
	if m == nil {
		return
	}
	m.LaunchFailures.Inc()
}
