// Package logging provides structured logging with credential redaction.
//
// # Overview
//
// The logging package wraps log/slog to provide:
//   - JSON or text output
//   - Redaction of API keys, bearer tokens and key= query parameters
//   - Request ID, model and trace fields taken from the context
//   - A level that can be changed while the process runs
//
// # Usage
//
//	logger, err := logging.New(cfg.Telemetry.Logging, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger.Logger)
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	slog.InfoContext(ctx, "generation completed",
//	    "api_key", "AIzaSyExample",  // Redacted
//	    "duration_ms", 1234,
//	)
//
// # Redaction
//
// Attribute keys containing password, secret, token, api_key, apikey,
// authorization or credential are always masked. String values, error
// values and the message itself are matched against the built-in patterns
// plus any configured in telemetry.logging.redact_patterns:
//
//   - Google API keys: AIzaSy... → AIza***
//   - Query keys: ?key=abc → ?key=***
//   - Bearer tokens: Bearer abc → Bearer ***
package logging
