// Package gemini wraps the Google Gen AI SDK behind a small Generator
// interface used by the HTTP handlers.
//
// A Client is built once at startup from config.GeminiConfig and injected
// wherever text generation is needed. It holds no per-request state and is
// safe for concurrent use by multiple goroutines.
//
// Every call uses the same generation settings (temperature 0.7, topP 0.95,
// topK 40, up to 2048 output tokens). Callers choose only the model and the
// prompt.
//
// Failures are always reported as *RemoteError. Its StatusCode carries the
// HTTP status returned by the API when there was one:
//
//	text, err := client.Generate(ctx, "gemini-3-flash-preview", "Hello")
//	if err != nil {
//	    var re *gemini.RemoteError
//	    errors.As(err, &re)
//	    w.WriteHeader(re.HTTPStatus())
//	}
package gemini
