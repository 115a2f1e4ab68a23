// Package metrics provides Prometheus metrics for the gateway.
//
// # Metrics
//
// With the default namespace "gateway" and subsystem "gemini":
//
//   - gateway_gemini_http_requests_total{method,route,status}
//   - gateway_gemini_http_request_duration_seconds{method,route}
//   - gateway_gemini_http_requests_in_flight
//   - gateway_gemini_generations_total{model,outcome}
//   - gateway_gemini_generation_duration_seconds{model}
//   - gateway_gemini_generation_errors_total{status_code}
//
// Go runtime and process collectors are registered as well.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//	handler = collector.Middleware("/health", "/api/gemini")(handler)
//
// The collector implements gemini.Observer, so it can be passed to
// gemini.New to record every remote call.
//
// # Cardinality
//
// Models come from request bodies. Once 100 distinct models have been seen,
// new ones are recorded as "other". Paths outside the known routes are
// recorded as route="other".
package metrics
