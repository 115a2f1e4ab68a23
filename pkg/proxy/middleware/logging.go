package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"mercator-hq/gateway/pkg/telemetry/tracing"
)

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
	bytes      int
}

// newResponseWriter creates a new response writer wrapper.
func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader captures the status code before writing.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

// Write ensures WriteHeader is called if not already done.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// LoggingMiddleware returns a middleware writing one access log line per
// request. The level follows the status: 5xx is an error, 4xx a warning,
// anything else info. Successful requests to quietPaths are logged at debug
// so that probes polling /health and /ready do not flood the log.
//
// The request ID and model are added by the logging handler from the
// context. When the tracing middleware runs further in, the trace ID it
// put in the response headers is logged as trace_id.
//
//	{
//	  "time": "2026-01-02T10:30:00Z",
//	  "level": "INFO",
//	  "msg": "request completed",
//	  "method": "POST",
//	  "path": "/api/gemini",
//	  "status": 200,
//	  "latency_ms": 1250,
//	  "bytes": 57,
//	  "remote_addr": "192.168.1.100:54321",
//	  "user_agent": "curl/8.5.0",
//	  "trace_id": "4bf92f3577b34da6a3ce929d0e0e4736",
//	  "request_id": "6f1c..."
//	}
func LoggingMiddleware(quietPaths ...string) func(http.Handler) http.Handler {
	quiet := make(map[string]struct{}, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			ctx := context.WithValue(r.Context(), StartTimeKey, startTime)

			rw := newResponseWriter(w)

			slog.DebugContext(ctx, "request started",
				"method", r.Method,
				"path", r.URL.Path,
			)

			next.ServeHTTP(rw, r.WithContext(ctx))

			latency := time.Since(startTime)

			level := slog.LevelInfo
			switch {
			case rw.statusCode >= 500:
				level = slog.LevelError
			case rw.statusCode >= 400:
				level = slog.LevelWarn
			default:
				if _, ok := quiet[r.URL.Path]; ok {
					level = slog.LevelDebug
				}
			}

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"latency_ms", latency.Milliseconds(),
				"bytes", rw.bytes,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			}
			if traceID := rw.Header().Get(tracing.TraceIDHeader); traceID != "" {
				attrs = append(attrs, "trace_id", traceID)
			}

			slog.Log(ctx, level, "request completed", attrs...)
		})
	}
}
