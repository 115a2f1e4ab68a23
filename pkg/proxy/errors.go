package proxy

import (
	"errors"
	"net/http"

	"mercator-hq/gateway/pkg/gemini"
)

// HandleError maps an error raised while serving a generation request to
// the HTTP status and body sent back to the client.
//
// Request errors keep their own status and produce {"error":...}. Anything
// else is treated as a remote failure and normalised through
// gemini.AsRemoteError: the remote status is used when it is a valid HTTP
// error status, 500 otherwise, and the body is {"success":false,"error":...}.
//
//	status, body := HandleError(err)
//	WriteJSONResponse(w, status, body)
func HandleError(err error) (int, any) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		status := reqErr.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		return status, reqErr.ToErrorResponse()
	}

	remote := gemini.AsRemoteError(err, "")
	if remote == nil {
		remote = &gemini.RemoteError{}
	}
	return remote.HTTPStatus(), newGenerationError(remote)
}
