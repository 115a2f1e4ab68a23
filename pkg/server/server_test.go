package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"mercator-hq/gateway/pkg/config"
	"mercator-hq/gateway/pkg/gemini"
	"mercator-hq/gateway/pkg/telemetry/health"
	"mercator-hq/gateway/pkg/telemetry/metrics"
)

func quietLogs(t *testing.T) {
	t.Helper()
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
}

// countingGenerator answers every prompt with a fixed result and counts calls.
type countingGenerator struct {
	calls atomic.Int32
	text  string
	err   error
}

func (g *countingGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	g.calls.Add(1)
	return g.text, g.err
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Server.ListenAddress = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = 2 * time.Second
	cfg.Telemetry.Metrics.Namespace = "test"
	return cfg
}

func newTestServer(t *testing.T, gen gemini.Generator, opts ...func(*Options)) (*Server, *metrics.Collector) {
	t.Helper()
	quietLogs(t)

	cfg := testConfig()
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	o := Options{Generator: gen, Metrics: collector}
	for _, opt := range opts {
		opt(&o)
	}

	srv, err := NewServer(cfg, o)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return srv, collector
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewServer_Validation(t *testing.T) {
	if _, err := NewServer(nil, Options{Generator: &countingGenerator{}}); err == nil {
		t.Error("nil config should be rejected")
	}
	if _, err := NewServer(testConfig(), Options{}); err == nil {
		t.Error("missing generator should be rejected")
	}
	if _, err := NewServer(testConfig(), Options{Generator: &countingGenerator{}}); err != nil {
		t.Errorf("minimal options should be accepted: %v", err)
	}
}

func TestServer_Routes(t *testing.T) {
	gen := &countingGenerator{text: "Hi there"}
	srv, _ := newTestServer(t, gen)
	h := srv.Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "health",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"status": "UP", "service": "Gemini Integration API"},
		},
		{
			name:       "generate",
			method:     http.MethodPost,
			path:       "/api/gemini",
			body:       `{"prompt":"Hello"}`,
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"success": true, "text": "Hi there"},
		},
		{
			name:       "empty prompt",
			method:     http.MethodPost,
			path:       "/api/gemini",
			body:       `{"prompt":""}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Prompt is required"},
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/unknown",
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"error": "Not Found"},
		},
		{
			name:       "generate with GET",
			method:     http.MethodGet,
			path:       "/api/gemini",
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   map[string]any{"error": "Method Not Allowed"},
		},
		{
			name:       "ready without checks",
			method:     http.MethodGet,
			path:       "/ready",
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"status": "ready"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("every response should carry X-Request-ID")
			}

			var got map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
			}
			for k, v := range tt.wantBody {
				if got[k] != v {
					t.Errorf("body[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}

	if n := gen.calls.Load(); n != 1 {
		t.Errorf("remote calls = %d, want 1", n)
	}
}

func TestServer_RemoteErrorStatus(t *testing.T) {
	gen := &countingGenerator{err: &gemini.RemoteError{StatusCode: 429, Message: "rate limited"}}
	srv, _ := newTestServer(t, gen)

	w := do(t, srv.Handler(), http.MethodPost, "/api/gemini", `{"prompt":"Hello"}`)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"success":false,"error":"rate limited"}` {
		t.Errorf("body = %s", got)
	}
	if gen.calls.Load() != 1 {
		t.Errorf("remote calls = %d, want exactly 1", gen.calls.Load())
	}
}

func TestServer_UndecodableBodies(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "truncated JSON",
			body:       `{"prompt":"Hel`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name:       "not JSON at all",
			body:       `prompt=Hello`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name:       "numeric prompt",
			body:       `{"prompt":123}`,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"error":"prompt must be a string, got 123"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &countingGenerator{text: "unused"}
			srv, _ := newTestServer(t, gen)

			w := do(t, srv.Handler(), http.MethodPost, "/api/gemini", tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
			if gen.calls.Load() != 0 {
				t.Errorf("remote calls = %d, want 0", gen.calls.Load())
			}
		})
	}
}

func TestServer_RecoversFromPanic(t *testing.T) {
	gen := gemini.GeneratorFunc(func(ctx context.Context, model, prompt string) (string, error) {
		panic("generator exploded")
	})
	srv, _ := newTestServer(t, gen)
	h := srv.Handler()

	w := do(t, h, http.MethodPost, "/api/gemini", `{"prompt":"Hello"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Internal Server Error"}` {
		t.Errorf("body = %s", got)
	}

	if w := do(t, h, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("server should keep serving after a panic, got %d", w.Code)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, &countingGenerator{})

	req := httptest.NewRequest(http.MethodOptions, "/api/gemini", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestServer_Metrics(t *testing.T) {
	srv, _ := newTestServer(t, &countingGenerator{text: "ok"})
	h := srv.Handler()

	do(t, h, http.MethodGet, "/health", "")
	do(t, h, http.MethodPost, "/api/gemini", `{"prompt":"x"}`)

	w := do(t, h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`test_gemini_http_requests_total{method="GET",route="/health",status="200"} 1`,
		`test_gemini_http_requests_total{method="POST",route="/api/gemini",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition lacks %q", want)
		}
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	quietLogs(t)
	cfg := testConfig()
	cfg.Telemetry.Metrics.Enabled = false

	srv, err := NewServer(cfg, Options{Generator: &countingGenerator{}})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	if w := do(t, srv.Handler(), http.MethodGet, "/metrics", ""); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestServer_Readiness(t *testing.T) {
	checker := health.New(time.Second)
	checker.Register("gemini", func(context.Context) error {
		return errors.New("Gemini client is not initialized")
	})
	srv, _ := newTestServer(t, &countingGenerator{}, func(o *Options) {
		o.Readiness = checker
		o.Version = health.VersionInfo{Version: "1.0.0"}
	})
	h := srv.Handler()

	if w := do(t, h, http.MethodGet, "/ready", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("/ready status = %d, want 503", w.Code)
	}

	w := do(t, h, http.MethodGet, "/version", "")
	var info health.VersionInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if info.Version != "1.0.0" {
		t.Errorf("version = %q, want 1.0.0", info.Version)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t, &countingGenerator{text: "ok"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !srv.IsRunning() {
		t.Error("IsRunning() = false after start")
	}

	resp, err := http.Get("http://" + srv.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	if err := srv.Start(ctx); err == nil {
		t.Error("second Start should fail")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestServer_StartListenError(t *testing.T) {
	quietLogs(t)
	cfg := testConfig()
	cfg.Server.ListenAddress = "256.0.0.1:99999"

	srv, err := NewServer(cfg, Options{Generator: &countingGenerator{}})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := srv.Start(context.Background()); err == nil {
		t.Error("Start() should fail on an invalid address")
	}
}
