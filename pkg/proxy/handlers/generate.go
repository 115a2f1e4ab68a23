package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"mercator-hq/gateway/pkg/gemini"
	"mercator-hq/gateway/pkg/proxy"
	"mercator-hq/gateway/pkg/proxy/types"
	"mercator-hq/gateway/pkg/telemetry/logging"
)

// GenerateHandler forwards a prompt to Gemini and returns the generated text.
type GenerateHandler struct {
	generator    gemini.Generator
	defaultModel string
	maxBodyBytes int64
}

// NewGenerateHandler creates a generation handler. defaultModel is used
// when the request has no model field; maxBodyBytes caps the request body
// (proxy.DefaultMaxBodyBytes when not positive).
func NewGenerateHandler(generator gemini.Generator, defaultModel string, maxBodyBytes int64) *GenerateHandler {
	return &GenerateHandler{
		generator:    generator,
		defaultModel: defaultModel,
		maxBodyBytes: maxBodyBytes,
	}
}

// ServeHTTP implements http.Handler.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		_ = proxy.WriteErrorResponse(w, http.StatusMethodNotAllowed, types.MsgMethodNotAllowed)
		return
	}

	req, err := proxy.ParseGenerationRequest(w, r, h.maxBodyBytes)
	if err != nil {
		status, werr := proxy.WriteError(w, err)
		slog.Log(ctx, levelFor(status), "rejected generation request", "status", status, "error", err)
		if werr != nil {
			slog.ErrorContext(ctx, "failed to write error response", "error", werr)
		}
		return
	}

	model := req.ModelOr(h.defaultModel)
	ctx = logging.WithModel(ctx, model)

	slog.DebugContext(ctx, "processing generation request", "prompt_length", len(req.Prompt))

	start := time.Now()
	text, err := h.generator.Generate(ctx, model, req.Prompt)
	latency := time.Since(start)

	if err != nil {
		status, werr := proxy.WriteError(w, err)
		slog.ErrorContext(ctx, "generation failed",
			"status", status,
			"error", err,
			"latency_ms", latency.Milliseconds(),
		)
		if werr != nil {
			slog.ErrorContext(ctx, "failed to write error response", "error", werr)
		}
		return
	}

	slog.InfoContext(ctx, "generation successful",
		"result_length", len(text),
		"latency_ms", latency.Milliseconds(),
	)

	if err := proxy.WriteJSONResponse(w, http.StatusOK, types.NewGenerationResponse(text)); err != nil {
		slog.ErrorContext(ctx, "failed to write response", "error", err)
	}
}

// levelFor logs client mistakes at warn and everything else at error.
func levelFor(status int) slog.Level {
	if status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}
