// Package proxy holds the request and response plumbing shared by the
// gateway's HTTP handlers.
//
// ParseGenerationRequest turns a request body into a validated
// types.GenerationRequest. HandleError and WriteError translate failures
// into the two public error shapes:
//
//	400 {"error":"Prompt is required"}
//	500 {"error":"Internal Server Error"}               undecodable body
//	4xx/5xx {"success":false,"error":"<remote message>"}
//
// A prompt that is present but not a string is not a validation failure.
// It is reported in the generation failure shape, with status 500.
//
// Remote failures keep the status reported by Gemini when it is a valid
// HTTP error status and fall back to 500. An empty remote message is
// replaced by "An unexpected error occurred".
//
// Sub-packages:
//   - handlers: route handlers (/health, /api/gemini, fallback)
//   - middleware: recovery, request ID, access logging and CORS
//   - types: JSON bodies
package proxy
