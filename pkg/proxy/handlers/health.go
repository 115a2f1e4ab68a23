package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"mercator-hq/gateway/pkg/proxy"
	"mercator-hq/gateway/pkg/proxy/types"
)

// ServiceName is reported by the liveness endpoint.
const ServiceName = "Gemini Integration API"

// HealthHandler handles liveness requests. It has no dependencies and
// never fails.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a new liveness handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		_ = proxy.WriteErrorResponse(w, http.StatusMethodNotAllowed, types.MsgMethodNotAllowed)
		return
	}

	resp := types.NewHealthResponse(ServiceName, h.now())
	if err := proxy.WriteJSONResponse(w, http.StatusOK, resp); err != nil {
		slog.ErrorContext(r.Context(), "failed to write health response", "error", err)
	}
}
