package health

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
)

// VersionInfo is the body of /version.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// ReadinessHandler serves the aggregated report: 200 when every check
// passes, 503 otherwise. Failing checks are logged at warn so a gateway
// stuck without credentials is visible without polling the endpoint.
//
//	{
//	    "status": "not_ready",
//	    "checks": {
//	        "gemini": {"status": "unhealthy", "message": "Gemini client is not initialized", "duration_ms": 0.01}
//	    },
//	    "timestamp": "2026-01-02T10:30:00Z"
//	}
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowProbeMethod(w, r) {
			return
		}

		report := c.Check(r.Context())

		status := http.StatusOK
		if !report.Ready() {
			status = http.StatusServiceUnavailable
			for name, res := range report.Checks {
				if res.Status != StatusOK {
					slog.WarnContext(r.Context(), "readiness check failed",
						"check", name,
						"message", res.Message,
					)
				}
			}
		}
		writeJSON(w, r, status, report)
	}
}

// VersionHandler serves info. GoVersion is filled from the running binary
// when empty.
func VersionHandler(info VersionInfo) http.HandlerFunc {
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !allowProbeMethod(w, r) {
			return
		}
		writeJSON(w, r, http.StatusOK, info)
	}
}

// allowProbeMethod rejects anything but GET and HEAD with the gateway's
// JSON error body.
func allowProbeMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeJSON(w, r, http.StatusMethodNotAllowed, map[string]string{"error": "Method Not Allowed"})
	return false
}

// writeJSON writes v uncached. HEAD requests get the headers only.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}
