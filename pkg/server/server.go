package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"mercator-hq/gateway/pkg/config"
	"mercator-hq/gateway/pkg/gemini"
	"mercator-hq/gateway/pkg/proxy/handlers"
	"mercator-hq/gateway/pkg/proxy/middleware"
	"mercator-hq/gateway/pkg/telemetry/health"
	"mercator-hq/gateway/pkg/telemetry/metrics"
	"mercator-hq/gateway/pkg/telemetry/tracing"
)

// Route paths served by the gateway.
const (
	PathHealth   = "/health"
	PathReady    = "/ready"
	PathVersion  = "/version"
	PathGenerate = "/api/gemini"
)

// Options carries the collaborators of a Server. Generator is required; the
// telemetry fields fall back to disabled implementations when nil.
type Options struct {
	// Generator serves POST /api/gemini. Normally a *gemini.Client.
	Generator gemini.Generator

	// Metrics records HTTP metrics and serves the metrics endpoint.
	Metrics *metrics.Collector

	// Tracer wraps every request in a server span.
	Tracer *tracing.Tracer

	// Readiness serves /ready.
	Readiness *health.Checker

	// Version is reported by /version.
	Version health.VersionInfo
}

// Server is the gateway's HTTP server. It builds the route table and the
// middleware chain once and manages the listener lifecycle.
type Server struct {
	config       *config.Config
	opts         Options
	handler      http.Handler
	httpServer   *http.Server
	listener     net.Listener
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server for cfg. The configuration must already be
// validated.
func NewServer(cfg *config.Config, opts Options) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if opts.Generator == nil {
		return nil, errors.New("generator is required")
	}
	if opts.Tracer == nil {
		opts.Tracer = tracing.Noop()
	}
	if opts.Metrics == nil {
		disabled := cfg.Telemetry.Metrics
		disabled.Enabled = false
		opts.Metrics = metrics.NewCollector(&disabled, nil)
	}
	if opts.Readiness == nil {
		opts.Readiness = health.New(0)
	}

	s := &Server{
		config: cfg,
		opts:   opts,
	}
	s.handler = s.setupRoutes()
	return s, nil
}

// Start binds the listen address and serves until ctx is cancelled or the
// server fails. A cancelled context triggers a graceful shutdown bounded by
// server.shutdown_timeout.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.config.Server.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.ListenAddress, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.config.Server.ReadTimeout,
		ReadHeaderTimeout: s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
		IdleTimeout:       s.config.Server.IdleTimeout,
		MaxHeaderBytes:    s.config.Server.MaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting gateway server", "address", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		if ok {
			return err
		}
		return nil
	}
}

// Shutdown gracefully stops the server. In-flight requests get up to
// server.shutdown_timeout to complete. It is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		running := s.isRunning
		httpServer := s.httpServer
		s.mu.RUnlock()
		if !running {
			return
		}

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("gateway server stopped")
	})

	return shutdownErr
}

// IsRunning reports whether the server is currently serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Handler returns the complete HTTP handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// setupRoutes builds the route table and wraps it in the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	routes := []string{PathHealth, PathReady, PathVersion, PathGenerate}

	mux.Handle(PathHealth, handlers.NewHealthHandler())
	mux.Handle(PathGenerate, handlers.NewGenerateHandler(
		s.opts.Generator,
		s.config.Gemini.DefaultModel,
		s.config.Server.MaxBodyBytes,
	))
	mux.Handle(PathReady, s.opts.Readiness.ReadinessHandler())
	mux.Handle(PathVersion, health.VersionHandler(s.opts.Version))

	if s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.opts.Metrics.Handler())
		routes = append(routes, s.config.Telemetry.Metrics.Path)
	}

	mux.Handle("/", handlers.NotFoundHandler())

	return middleware.Chain(mux,
		middleware.RecoveryMiddleware,
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(PathHealth, PathReady),
		s.opts.Tracer.Middleware,
		s.opts.Metrics.Middleware(routes...),
		middleware.CORSMiddleware(s.config.Server.CORS),
	)
}
