package types

// Public error messages.
const (
	MsgPromptRequired      = "Prompt is required"
	MsgInternalServerError = "Internal Server Error"
	MsgNotFound            = "Not Found"
	MsgMethodNotAllowed    = "Method Not Allowed"
)

// ErrorResponse is returned for request validation failures and router
// level errors (unknown route, wrong method, recovered panic).
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an ErrorResponse.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// GenerationErrorResponse is returned when the remote call failed.
type GenerationErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewGenerationErrorResponse creates a failure body carrying message.
func NewGenerationErrorResponse(message string) *GenerationErrorResponse {
	return &GenerationErrorResponse{Success: false, Error: message}
}
