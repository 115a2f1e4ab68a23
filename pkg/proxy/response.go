package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mercator-hq/gateway/pkg/gemini"
	"mercator-hq/gateway/pkg/proxy/types"
)

// WriteJSONResponse writes data as JSON with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// WriteErrorResponse writes {"error":message} with the given status code.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSONResponse(w, statusCode, types.NewErrorResponse(message))
}

// WriteError maps err with HandleError, writes the result and returns the
// status that was sent.
func WriteError(w http.ResponseWriter, err error) (int, error) {
	status, body := HandleError(err)
	return status, WriteJSONResponse(w, status, body)
}

func newGenerationError(err *gemini.RemoteError) *types.GenerationErrorResponse {
	return types.NewGenerationErrorResponse(err.PublicMessage())
}
