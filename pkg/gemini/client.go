package gemini

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"mercator-hq/gateway/pkg/config"
	"mercator-hq/gateway/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

// Fixed generation settings applied to every call.
const (
	Temperature     float32 = 0.7
	TopP            float32 = 0.95
	TopK            float32 = 40
	MaxOutputTokens int32   = 2048
)

// Options carries the optional collaborators of a Client.
type Options struct {
	// HTTPClient overrides the client used by the SDK. Its transport is
	// wrapped to propagate trace context.
	HTTPClient *http.Client

	// Tracer wraps each call in a client span. Defaults to a noop tracer.
	Tracer *tracing.Tracer

	// Observer records call outcomes. Defaults to a no-op.
	Observer Observer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client is the process-wide handle to the Gemini API. It is read-only after
// New returns and safe for concurrent use.
type Client struct {
	genai    *genai.Client
	initErr  *RemoteError
	apiKey   string
	tracer   *tracing.Tracer
	observer Observer
	logger   *slog.Logger
}

// New builds a Client from configuration. It never fails: when the SDK
// cannot be initialised (most often because no API key is set) the problem is
// logged and every Generate call reports it as a *RemoteError.
func New(ctx context.Context, cfg config.GeminiConfig, opts Options) *Client {
	c := &Client{
		apiKey:   cfg.APIKey,
		tracer:   opts.Tracer,
		observer: opts.Observer,
		logger:   opts.Logger,
	}
	if c.tracer == nil {
		c.tracer = tracing.Noop()
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	// Outbound calls carry the trace context of the gemini.generate span.
	httpClient := &http.Client{}
	if opts.HTTPClient != nil {
		*httpClient = *opts.HTTPClient
	}
	httpClient.Transport = tracing.Transport(httpClient.Transport)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		c.logger.Warn("gemini client initialization failed, generation requests will fail",
			"error", AsRemoteError(err, cfg.APIKey).Message)
		c.initErr = &RemoteError{
			Message: "Gemini client is not initialized",
			Cause:   err,
		}
		return c
	}

	c.genai = client
	return c
}

// Check returns the initialisation failure, if any. It is registered as
// the readiness check of the gateway.
func (c *Client) Check(context.Context) error {
	if c.initErr != nil {
		return c.initErr
	}
	return nil
}

// Generate sends prompt to model with the fixed generation settings and
// returns the concatenated text of the first candidate. The call is bound to
// ctx; it is made exactly once and never retried.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "gemini.generate", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	tracing.SetGenerationAttributes(span, model, len(prompt))

	start := time.Now()
	text, err := c.generate(ctx, model, prompt)
	duration := time.Since(start)

	if err != nil {
		c.observer.ObserveGeneration(model, err.StatusCode, duration)
		span.SetAttributes(attribute.Int(tracing.AttrRemoteStatus, err.StatusCode))
		tracing.SetError(span, err)
		tracing.SetStatus(span, err)
		return "", err
	}

	c.observer.ObserveGeneration(model, http.StatusOK, duration)
	span.SetAttributes(attribute.Int(tracing.AttrResultLength, len(text)))
	tracing.SetStatus(span, nil)
	return text, nil
}

func (c *Client) generate(ctx context.Context, model, prompt string) (string, *RemoteError) {
	if c.initErr != nil {
		return "", c.initErr
	}

	resp, err := c.genai.Models.GenerateContent(ctx, model, genai.Text(prompt), generationConfig())
	if err != nil {
		return "", AsRemoteError(err, c.apiKey)
	}
	return resp.Text(), nil
}

// generationConfig returns a fresh config per call; the SDK fills in
// defaults on the value it is given.
func generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(Temperature),
		TopP:            genai.Ptr(TopP),
		TopK:            genai.Ptr(TopK),
		MaxOutputTokens: MaxOutputTokens,
	}
}
