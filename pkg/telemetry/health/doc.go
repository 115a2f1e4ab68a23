// Package health implements the readiness and version endpoints.
//
// Liveness is served by the /health route of the proxy handlers, whose
// response shape is part of the public API. Readiness is separate: /ready
// runs every registered check concurrently, each bounded by a timeout, and
// answers 503 when any of them fails. The gateway registers a single check
// that reports whether the Gemini client was initialized.
//
//	checker := health.New(0)
//	checker.Register("gemini", client.Check)
//	mux.Handle("/ready", checker.ReadinessHandler())
package health
