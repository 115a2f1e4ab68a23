package metrics

import (
	"time"

	"mercator-hq/gateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// GeminiMetrics tracks calls to the Gemini API.
type GeminiMetrics struct {
	generations *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	errors      *prometheus.CounterVec
}

// NewGeminiMetrics creates and registers Gemini metrics with the provided registry.
func NewGeminiMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *GeminiMetrics {
	gm := &GeminiMetrics{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "generations_total",
				Help:      "Total number of generation calls by model and outcome",
			},
			[]string{"model", "outcome"},
		),

		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "generation_duration_seconds",
				Help:      "Gemini API call latency in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"model"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "generation_errors_total",
				Help:      "Total number of failed generation calls by remote status code",
			},
			[]string{"status_code"},
		),
	}

	registry.MustRegister(
		gm.generations,
		gm.latency,
		gm.errors,
	)

	return gm
}

// RecordGeneration records one generation call.
func (gm *GeminiMetrics) RecordGeneration(model, outcome string, duration time.Duration) {
	gm.generations.WithLabelValues(model, outcome).Inc()
	gm.latency.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordError records a failed call by status code label.
func (gm *GeminiMetrics) RecordError(statusCode string) {
	gm.errors.WithLabelValues(statusCode).Inc()
}
