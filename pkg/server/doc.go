// Package server provides the gateway's HTTP server.
//
// The server owns the route table and the middleware chain and manages the
// listener lifecycle. Every collaborator is injected through Options; the
// server holds no package-level state.
//
// # Routes
//
//	GET  /health      liveness, {"status":"UP","timestamp":...,"service":...}
//	POST /api/gemini  text generation
//	GET  /ready       readiness checks (503 when the Gemini client is unusable)
//	GET  /version     build information
//	GET  /metrics     Prometheus exposition, when metrics are enabled
//	*    anything else 404 {"error":"Not Found"}
//
// # Middleware
//
// Requests pass, outermost first, through recovery, request ID, access
// logging, tracing, metrics and CORS before reaching the mux.
//
// # Basic Usage
//
//	srv, err := server.NewServer(cfg, server.Options{
//	    Generator: client,
//	    Metrics:   collector,
//	    Tracer:    tracer,
//	})
//	if err != nil {
//	    return err
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks until ctx is cancelled and then shuts down gracefully,
// giving in-flight requests server.shutdown_timeout to finish. Handler
// exposes the complete handler for tests that do not need a listener.
package server
