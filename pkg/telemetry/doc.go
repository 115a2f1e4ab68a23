// Package telemetry groups the gateway's observability packages.
//
//   - logging: slog handlers with secret redaction and request context fields
//   - metrics: Prometheus collectors for HTTP traffic and Gemini calls
//   - tracing: OpenTelemetry spans exported over OTLP/gRPC
//   - health: readiness and version endpoints
//
// Each sub-package is constructed from its section of config.TelemetryConfig
// and handed to the server explicitly. Nothing is registered globally except
// the OpenTelemetry provider when tracing is enabled.
package telemetry
