package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every variable the loader reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvAPIKey, EnvGeminiAPIKey, EnvGatewayAPIKey, EnvPort, EnvListenAddress,
		EnvDefaultModel, EnvBaseURL, EnvLogLevel, EnvLogFormat,
		EnvMetricsEnabled, EnvTracingEnabled, EnvTracingEndpoint, EnvCORSEnabled,
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_EnvOnly(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:3000" {
		t.Errorf("ListenAddress = %q, want %q", cfg.Server.ListenAddress, "0.0.0.0:3000")
	}
	if cfg.Gemini.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.DefaultModel != DefaultModel {
		t.Errorf("DefaultModel = %q, want %q", cfg.Gemini.DefaultModel, DefaultModel)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if cfg.Telemetry.Tracing.Enabled {
		t.Error("tracing should be disabled by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(*testing.T, *Config)
	}{
		{
			name: "API_KEY sets the credential",
			env:  map[string]string{EnvAPIKey: "k-123"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Gemini.APIKey != "k-123" {
					t.Errorf("APIKey = %q, want %q", cfg.Gemini.APIKey, "k-123")
				}
			},
		},
		{
			name: "gateway specific key wins",
			env: map[string]string{
				EnvAPIKey:        "plain",
				EnvGeminiAPIKey:  "gemini",
				EnvGatewayAPIKey: "gateway",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Gemini.APIKey != "gateway" {
					t.Errorf("APIKey = %q, want %q", cfg.Gemini.APIKey, "gateway")
				}
			},
		},
		{
			name: "PORT rewrites the port",
			env:  map[string]string{EnvPort: "8081"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.ListenAddress != "0.0.0.0:8081" {
					t.Errorf("ListenAddress = %q, want %q", cfg.Server.ListenAddress, "0.0.0.0:8081")
				}
			},
		},
		{
			name: "full listen address beats PORT",
			env: map[string]string{
				EnvPort:          "8081",
				EnvListenAddress: "127.0.0.1:9000",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.ListenAddress != "127.0.0.1:9000" {
					t.Errorf("ListenAddress = %q, want %q", cfg.Server.ListenAddress, "127.0.0.1:9000")
				}
			},
		},
		{
			name: "model and base url",
			env: map[string]string{
				EnvDefaultModel: "gemini-2.5-pro",
				EnvBaseURL:      "http://localhost:8089",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Gemini.DefaultModel != "gemini-2.5-pro" {
					t.Errorf("DefaultModel = %q, want %q", cfg.Gemini.DefaultModel, "gemini-2.5-pro")
				}
				if cfg.Gemini.BaseURL != "http://localhost:8089" {
					t.Errorf("BaseURL = %q, want %q", cfg.Gemini.BaseURL, "http://localhost:8089")
				}
			},
		},
		{
			name: "telemetry toggles",
			env: map[string]string{
				EnvLogLevel:        "debug",
				EnvLogFormat:       "text",
				EnvMetricsEnabled:  "false",
				EnvTracingEnabled:  "true",
				EnvTracingEndpoint: "localhost:4317",
				EnvCORSEnabled:     "0",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Telemetry.Logging.Level != "debug" {
					t.Errorf("Level = %q, want %q", cfg.Telemetry.Logging.Level, "debug")
				}
				if cfg.Telemetry.Logging.Format != "text" {
					t.Errorf("Format = %q, want %q", cfg.Telemetry.Logging.Format, "text")
				}
				if cfg.Telemetry.Metrics.Enabled {
					t.Error("metrics should be disabled")
				}
				if !cfg.Telemetry.Tracing.Enabled {
					t.Error("tracing should be enabled")
				}
				if cfg.Server.CORS.Enabled {
					t.Error("CORS should be disabled")
				}
			},
		},
		{
			name: "unparsable booleans are ignored",
			env:  map[string]string{EnvMetricsEnabled: "maybe"},
			check: func(t *testing.T, cfg *Config) {
				if !cfg.Telemetry.Metrics.Enabled {
					t.Error("metrics should keep its default")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  listen_address: "127.0.0.1:4000"
  write_timeout: "45s"
gemini:
  api_key: "from-file"
  default_model: "gemini-2.0-flash"
telemetry:
  logging:
    level: "warn"
`)
	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvPort, "5000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gemini.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want %q", cfg.Gemini.APIKey, "from-env")
	}
	if cfg.Server.ListenAddress != "127.0.0.1:5000" {
		t.Errorf("ListenAddress = %q, want %q", cfg.Server.ListenAddress, "127.0.0.1:5000")
	}
	if cfg.Server.WriteTimeout != 45*time.Second {
		t.Errorf("WriteTimeout = %v, want %v", cfg.Server.WriteTimeout, 45*time.Second)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, DefaultReadTimeout)
	}
	if cfg.Gemini.DefaultModel != "gemini-2.0-flash" {
		t.Errorf("DefaultModel = %q, want %q", cfg.Gemini.DefaultModel, "gemini-2.0-flash")
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Level = %q, want %q", cfg.Telemetry.Logging.Level, "warn")
	}
	// Booleans omitted from the file keep their defaults.
	if !cfg.Server.CORS.Enabled {
		t.Error("CORS should stay enabled")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should stay enabled")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  listen_address: "0.0.0.0:3000"
  invalid yaml here: [
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telemetry:
  logging:
    level: "loud"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError in error chain, got %T: %v", err, err)
	}
	if len(validationErr.Errors) != 1 || validationErr.Errors[0].Field != "telemetry.logging.level" {
		t.Errorf("Errors = %v, want a single telemetry.logging.level error", validationErr.Errors)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "API_KEY=dotenv-key\nPORT=7000\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	// godotenv does not override variables that are already set, and
	// t.Setenv("") counts as set. Unset them for the duration of the test.
	for _, key := range []string{EnvAPIKey, EnvPort} {
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvAPIKey)
		os.Unsetenv(EnvPort)
	})

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gemini.APIKey != "dotenv-key" {
		t.Errorf("APIKey = %q, want %q", cfg.Gemini.APIKey, "dotenv-key")
	}
	if cfg.Server.ListenAddress != "0.0.0.0:7000" {
		t.Errorf("ListenAddress = %q, want %q", cfg.Server.ListenAddress, "0.0.0.0:7000")
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("LoadDotEnv() on a missing file error = %v, want nil", err)
	}
	if err := LoadDotEnv(""); err != nil {
		t.Errorf("LoadDotEnv(\"\") error = %v, want nil", err)
	}
}

func TestWithPort(t *testing.T) {
	tests := []struct {
		address string
		port    string
		want    string
	}{
		{"0.0.0.0:3000", "8080", "0.0.0.0:8080"},
		{"127.0.0.1:3000", "9", "127.0.0.1:9"},
		{":3000", "4000", ":4000"},
		{"garbage", "4000", "0.0.0.0:4000"},
		{"[::1]:3000", "4000", "[::1]:4000"},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			if got := withPort(tt.address, tt.port); got != tt.want {
				t.Errorf("withPort(%q, %q) = %q, want %q", tt.address, tt.port, got, tt.want)
			}
		})
	}
}
