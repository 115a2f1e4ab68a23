package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables understood by the gateway.
const (
	// EnvAPIKey is the credential variable the service has always read.
	EnvAPIKey = "API_KEY"
	// EnvGeminiAPIKey is the variable name used by Google's own tooling.
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	// EnvPort overrides the port of the listen address.
	EnvPort = "PORT"

	EnvListenAddress   = "GATEWAY_LISTEN_ADDRESS"
	EnvGatewayAPIKey   = "GATEWAY_GEMINI_API_KEY"
	EnvDefaultModel    = "GATEWAY_GEMINI_DEFAULT_MODEL"
	EnvBaseURL         = "GATEWAY_GEMINI_BASE_URL"
	EnvLogLevel        = "GATEWAY_LOG_LEVEL"
	EnvLogFormat       = "GATEWAY_LOG_FORMAT"
	EnvMetricsEnabled  = "GATEWAY_METRICS_ENABLED"
	EnvTracingEnabled  = "GATEWAY_TRACING_ENABLED"
	EnvTracingEndpoint = "GATEWAY_TRACING_ENDPOINT"
	EnvCORSEnabled     = "GATEWAY_CORS_ENABLED"
)

// Load builds the runtime configuration. The sequence is:
//  1. Start from DefaultConfig
//  2. Decode the YAML file on top, when path is not empty
//  3. Apply environment variable overrides
//  4. Validate the final configuration
//
// Environment variables always take precedence over the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables that are already set are left untouched and a
// missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	return nil
}

// readFile decodes a YAML file on top of the defaults.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Credential: later names win.
	for _, key := range []string{EnvAPIKey, EnvGeminiAPIKey, EnvGatewayAPIKey} {
		if val := os.Getenv(key); val != "" {
			cfg.Gemini.APIKey = val
		}
	}
	if val := os.Getenv(EnvDefaultModel); val != "" {
		cfg.Gemini.DefaultModel = val
	}
	if val := os.Getenv(EnvBaseURL); val != "" {
		cfg.Gemini.BaseURL = val
	}

	// Server address: PORT keeps the configured host, the full address wins.
	if val := os.Getenv(EnvPort); val != "" {
		cfg.Server.ListenAddress = withPort(cfg.Server.ListenAddress, val)
	}
	if val := os.Getenv(EnvListenAddress); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv(EnvCORSEnabled); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Server.CORS.Enabled = b
		}
	}

	// Telemetry overrides
	if val := os.Getenv(EnvLogLevel); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv(EnvLogFormat); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv(EnvMetricsEnabled); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv(EnvTracingEnabled); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv(EnvTracingEndpoint); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
}

// withPort replaces the port of a host:port address.
func withPort(address, port string) string {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		host = "0.0.0.0"
	}
	return net.JoinHostPort(host, port)
}
