package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsRecorder exports operation counters and latency histograms
// through a Prometheus registry. It satisfies the same MetricsRecorder
// interface as the expvar recorder.
type PrometheusMetricsRecorder struct {
	operationTotal    *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewPrometheusMetricsRecorder constructs a recorder registered against the
// provided registerer. A nil registerer uses the default registry.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) *PrometheusMetricsRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PrometheusMetricsRecorder{
		operationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "herd_operations_total",
			Help: "Total number of herd service operations",
		}, []string{"operation", "status"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "herd_operation_duration_seconds",
			Help:    "Herd service operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "status"}),
	}
	r.operationTotal = registerOrGetCounterVec(reg, r.operationTotal)
	r.operationDuration = registerOrGetHistogramVec(reg, r.operationDuration)
	return r
}

// Observe implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.operationTotal.WithLabelValues(operation, status).Inc()
	r.operationDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func registerOrGetCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return c
}

func registerOrGetHistogramVec(reg prometheus.Registerer, h *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
	}
	return h
}
