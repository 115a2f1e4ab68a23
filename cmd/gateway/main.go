// Gateway is a small HTTP service that forwards text prompts to Google
// Gemini and returns the generated text.
//
// It exposes:
//   - GET /health, a liveness probe
//   - POST /api/gemini, one generation per request
//   - GET /ready, /version and /metrics for operators
//
// Usage:
//
//	# Start with environment configuration only (API_KEY, PORT)
//	gateway run
//
//	# Start with a configuration file and a dotenv file
//	gateway run --config gateway.yaml --env-file .env
//
//	# Print the effective configuration
//	gateway config --output yaml
//
//	# Show version information
//	gateway version
package main

func main() {
	Execute()
}
