package gemini

import (
	"context"
	"time"
)

// Generator produces text for a prompt with a given model.
//
// Implementations must be safe for concurrent use. Errors should be
// *RemoteError values; the HTTP layer normalises anything else with
// AsRemoteError.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc func(ctx context.Context, model, prompt string) (string, error)

// Generate calls f(ctx, model, prompt).
func (f GeneratorFunc) Generate(ctx context.Context, model, prompt string) (string, error) {
	return f(ctx, model, prompt)
}

// Observer is notified after every generation call. statusCode is 200 on
// success, the remote status on API errors and 0 when no response was
// received.
type Observer interface {
	ObserveGeneration(model string, statusCode int, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveGeneration(string, int, time.Duration) {}
