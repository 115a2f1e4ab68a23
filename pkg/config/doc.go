// Package config loads and validates the gateway configuration.
//
// Configuration is layered. Defaults come first, an optional YAML file is
// decoded on top, and environment variables override both:
//
//	cfg, err := config.Load("gateway.yaml") // or "" for env-only
//	if err != nil {
//	    return err
//	}
//
// The credential is read from API_KEY (GEMINI_API_KEY and
// GATEWAY_GEMINI_API_KEY are accepted as well) and PORT rewrites the port of
// the listen address, which defaults to 0.0.0.0:3000. A dotenv file can be
// loaded into the environment first with LoadDotEnv.
//
// A missing API key is not a validation error: the gateway starts and the
// first generation request reports the failure.
//
// There is no package-level configuration. The value returned by Load is
// passed explicitly to the components that need it. Watcher can reload the
// file at runtime; callers decide which settings are safe to apply.
//
// Example YAML:
//
//	server:
//	  listen_address: "127.0.0.1:3000"
//	  write_timeout: "120s"
//	gemini:
//	  default_model: "gemini-3-flash-preview"
//	telemetry:
//	  logging:
//	    level: "debug"
//	    format: "text"
//	  metrics:
//	    enabled: true
//	    path: "/metrics"
package config
