package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"mercator-hq/gateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// maxModels bounds the number of distinct model label values.
const maxModels = 100

// otherLabel replaces label values that would exceed a cardinality bound.
const otherLabel = "other"

// Collector owns the Prometheus registry and every gateway metric.
// It is safe for concurrent use.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	httpMetrics   *HTTPMetrics
	geminiMetrics *GeminiMetrics

	models *CardinalityLimiter
}

// NewCollector creates a collector registering into registry, or into a new
// registry when registry is nil.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
		models:   NewCardinalityLimiter(maxModels),
	}

	c.httpMetrics = NewHTTPMetrics(cfg, registry)
	c.geminiMetrics = NewGeminiMetrics(cfg, registry)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// RecordHTTPRequest records a served HTTP request.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.httpMetrics.RecordRequest(method, route, strconv.Itoa(status), duration)
}

// ObserveGeneration records the outcome of a Gemini call. statusCode is 200
// on success, the remote status on API errors and 0 when no response was
// received.
func (c *Collector) ObserveGeneration(model string, statusCode int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	if !c.models.Allow(model) {
		model = otherLabel
	}

	outcome := "success"
	if statusCode != http.StatusOK {
		outcome = "error"
	}

	c.geminiMetrics.RecordGeneration(model, outcome, duration)
	if outcome == "error" {
		c.geminiMetrics.RecordError(errorCodeLabel(statusCode))
	}
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// errorCodeLabel maps a remote status to a label value; 0 becomes "none".
func errorCodeLabel(statusCode int) string {
	if statusCode <= 0 {
		return "none"
	}
	return strconv.Itoa(statusCode)
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of distinct values admitted for a label.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether value may be used as a label value. Values already
// seen are always allowed; new values are admitted until the limit is hit.
func (cl *CardinalityLimiter) Allow(value string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[value]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[value]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[value] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
