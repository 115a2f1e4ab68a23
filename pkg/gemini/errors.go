package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// FallbackMessage is reported when a failure carries no message of its own.
const FallbackMessage = "An unexpected error occurred"

// RemoteError describes a failed generation call.
type RemoteError struct {
	// StatusCode is the HTTP status returned by the API (0 if the call never
	// produced a response, e.g. transport errors or cancellation).
	StatusCode int

	// Message is the error message from the API or the transport.
	Message string

	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("gemini error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gemini error: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status to relay to the caller: StatusCode when it
// is an HTTP error status, 500 otherwise.
func (e *RemoteError) HTTPStatus() int {
	if e.StatusCode >= 400 && e.StatusCode <= 599 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// PublicMessage returns Message, or FallbackMessage when it is empty.
func (e *RemoteError) PublicMessage() string {
	if strings.TrimSpace(e.Message) == "" {
		return FallbackMessage
	}
	return e.Message
}

// AsRemoteError converts any error into a *RemoteError. API errors keep their
// status and message, anything else keeps its text with no status. secret,
// when non-empty, is masked out of transport error text.
func AsRemoteError(err error, secret string) *RemoteError {
	if err == nil {
		return nil
	}

	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &RemoteError{StatusCode: apiErr.Code, Message: apiErr.Message, Cause: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &RemoteError{StatusCode: apiErrPtr.Code, Message: apiErrPtr.Message, Cause: err}
	}

	msg := err.Error()
	if secret != "" {
		msg = strings.ReplaceAll(msg, secret, "***")
	}
	return &RemoteError{Message: msg, Cause: err}
}
