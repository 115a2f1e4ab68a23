// Package middleware provides the HTTP middleware of the gateway.
//
// # Middleware Chain
//
// The server applies, outermost first:
//
//  1. RecoveryMiddleware: turns panics into 500 {"error":"Internal Server Error"}
//  2. RequestIDMiddleware: assigns X-Request-ID and stores it in the context
//  3. LoggingMiddleware: one access log line per request
//  4. tracing and metrics middleware from pkg/telemetry
//  5. CORSMiddleware: CORS headers and 204 preflight responses
//
// Chain composes them:
//
//	handler := middleware.Chain(mux,
//	    middleware.RecoveryMiddleware,
//	    middleware.RequestIDMiddleware,
//	    middleware.LoggingMiddleware("/health", "/ready"),
//	    middleware.CORSMiddleware(cfg.Server.CORS),
//	)
//
// Recovery is outermost so that a panic in any other middleware is caught
// as well. Request ID runs before logging so every log line of a request,
// including the access log, carries the same request_id.
package middleware
