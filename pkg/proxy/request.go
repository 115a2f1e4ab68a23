package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"mercator-hq/gateway/pkg/proxy/types"
)

const (
	// DefaultMaxBodyBytes caps a generation request body at 1 MiB.
	DefaultMaxBodyBytes = int64(1 << 20)

	// RequestIDHeader is the HTTP header for request ID propagation.
	RequestIDHeader = "X-Request-ID"
)

// ParseGenerationRequest decodes and validates a generation request body.
//
// The body is limited to maxBytes (DefaultMaxBodyBytes when not positive).
// A body that cannot be decoded (malformed, oversized or followed by
// trailing data) never reaches the route logic: it produces a RequestError
// with status 500 and types.MsgInternalServerError, the same answer the
// fallback handler gives. An empty prompt produces a 400 RequestError
// carrying types.MsgPromptRequired. A prompt or model of the wrong JSON
// type is returned as a *types.FieldTypeError, which HandleError reports
// as a failed generation.
func ParseGenerationRequest(w http.ResponseWriter, r *http.Request, maxBytes int64) (*types.GenerationRequest, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	body := http.MaxBytesReader(w, r.Body, maxBytes)
	defer body.Close()

	var req types.GenerationRequest
	dec := json.NewDecoder(body)
	// An empty body decodes as an empty object.
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *types.FieldTypeError
		if errors.As(err, &typeErr) {
			return nil, typeErr
		}
		return nil, undecodableBody(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON object")
		}
		return nil, undecodableBody(err)
	}

	if err := req.Validate(); err != nil {
		var valErr *types.ValidationError
		if errors.As(err, &valErr) {
			return nil, &RequestError{
				Status:  http.StatusBadRequest,
				Message: valErr.Message,
				Param:   valErr.Field,
			}
		}
		return nil, err
	}

	return &req, nil
}

func undecodableBody(cause error) *RequestError {
	return &RequestError{
		Status:  http.StatusInternalServerError,
		Message: types.MsgInternalServerError,
		Param:   "body",
		Cause:   cause,
	}
}

// ExtractRequestID returns the client supplied request ID, if any.
func ExtractRequestID(r *http.Request) string {
	return r.Header.Get(RequestIDHeader)
}

// RequestError is a request parsing or validation failure. Message is safe
// to return to the client; Cause is only logged.
type RequestError struct {
	Status  int
	Message string
	Param   string
	Cause   error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ToErrorResponse converts a RequestError to its response body.
func (e *RequestError) ToErrorResponse() *types.ErrorResponse {
	return types.NewErrorResponse(e.Message)
}
