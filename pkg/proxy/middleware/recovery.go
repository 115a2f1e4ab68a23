package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"mercator-hq/gateway/pkg/proxy"
	"mercator-hq/gateway/pkg/proxy/types"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and answers
// 500 {"error":"Internal Server Error"}. The panic value and stack are
// logged; nothing internal is exposed to the client and the panic is not
// re-raised, so the server keeps serving.
//
// http.ErrAbortHandler is re-raised untouched: net/http uses it to abort a
// response deliberately.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.ErrorContext(r.Context(), "panic in handler",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)

			_ = proxy.WriteErrorResponse(w, http.StatusInternalServerError, types.MsgInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
