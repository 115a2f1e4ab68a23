// Package types defines the JSON bodies exchanged on the gateway's routes.
//
// Request types:
//   - GenerationRequest: body of POST /api/gemini
//
// Response types:
//   - GenerationResponse: successful generation
//   - GenerationErrorResponse: remote failure, {"success":false,"error":...}
//   - ErrorResponse: request validation and router failures, {"error":...}
//   - HealthResponse: body of GET /health
//
// The field names are part of the public API and must not change.
package types
