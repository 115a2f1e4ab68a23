package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used on gateway spans. Custom keys live under "gateway.*".
const (
	AttrRequestID    = "gateway.request_id"
	AttrModel        = "gateway.gemini.model"
	AttrPromptLength = "gateway.gemini.prompt_length"
	AttrResultLength = "gateway.gemini.result_length"
	AttrRemoteStatus = "gateway.gemini.status_code"
	AttrErrorMessage = "error.message"
)

// SetGenerationAttributes records the model and prompt size of a generation
// call. The prompt text itself is never put on a span.
func SetGenerationAttributes(span trace.Span, model string, promptLength int) {
	span.SetAttributes(
		attribute.String(AttrModel, model),
		attribute.Int(AttrPromptLength, promptLength),
	)
}

// SetRequestID tags the span with the request correlation ID.
func SetRequestID(span trace.Span, requestID string) {
	if requestID == "" {
		return
	}
	span.SetAttributes(attribute.String(AttrRequestID, requestID))
}
