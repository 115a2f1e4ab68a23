package types

import "time"

// HealthStatusUp is the only status the liveness endpoint reports.
const HealthStatusUp = "UP"

// TimestampFormat renders instants as UTC ISO-8601 with milliseconds,
// e.g. 2026-01-02T15:04:05.000Z.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// GenerationResponse is returned when the model produced text.
type GenerationResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

// NewGenerationResponse wraps generated text in a success body.
func NewGenerationResponse(text string) *GenerationResponse {
	return &GenerationResponse{Success: true, Text: text}
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// NewHealthResponse builds an UP response stamped with now.
func NewHealthResponse(service string, now time.Time) *HealthResponse {
	return &HealthResponse{
		Status:    HealthStatusUp,
		Timestamp: now.UTC().Format(TimestampFormat),
		Service:   service,
	}
}
