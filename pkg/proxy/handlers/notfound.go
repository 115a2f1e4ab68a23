package handlers

import (
	"net/http"

	"mercator-hq/gateway/pkg/proxy"
	"mercator-hq/gateway/pkg/proxy/types"
)

// NotFoundHandler answers every unregistered route with a JSON 404.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = proxy.WriteErrorResponse(w, http.StatusNotFound, types.MsgNotFound)
	})
}
