// Package handlers provides the HTTP handlers of the gateway.
//
// # Handlers
//
//   - HealthHandler: GET /health, liveness, always 200 with status "UP"
//   - GenerateHandler: POST /api/gemini, one Gemini call per request
//   - NotFoundHandler: every unknown route, 404 {"error":"Not Found"}
//
// # Request Flow
//
// GenerateHandler follows a fixed sequence:
//
//  1. Reject methods other than POST with 405
//  2. Decode the body (500 "Internal Server Error" when it is not JSON)
//  3. Reject an empty prompt with 400 "Prompt is required", no remote call
//  4. Call the injected gemini.Generator once with the request context
//  5. Write {"success":true,"text":...} or map the failure through
//     proxy.HandleError
//
// Handlers hold no mutable state and are safe for concurrent use. The
// Generator is injected so tests can count and script remote calls without
// network access.
package handlers
