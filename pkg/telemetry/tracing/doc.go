// Package tracing provides OpenTelemetry tracing for the gateway.
//
// When telemetry.tracing.enabled is true, spans are batched and exported over
// OTLP/gRPC to telemetry.tracing.endpoint. Otherwise a noop tracer is used
// and instrumentation costs next to nothing.
//
// Two spans are produced per generation request: a server span opened by
// Tracer.Middleware ("POST /api/gemini") and a client span around the Gemini
// call ("gemini.generate"). Incoming W3C traceparent headers are honoured and
// the trace ID is returned in the X-Trace-ID response header.
//
// Prompts and generated text are never recorded; only their lengths are.
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
package tracing
