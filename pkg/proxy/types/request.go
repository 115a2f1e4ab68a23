package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GenerationRequest is the body of a text-generation request.
type GenerationRequest struct {
	// Prompt is the text sent to the model. Required and non-empty.
	Prompt string `json:"prompt"`

	// Model selects the Gemini model. Optional; the configured default
	// model is used when the field is absent or null. An explicit empty
	// string is forwarded as is.
	Model string `json:"model,omitempty"`

	// HasModel records whether the body carried a non-null model field.
	HasModel bool `json:"-"`
}

// FieldTypeError reports a request field whose JSON value is set but is
// not a string. Such requests are not rejected as invalid: they fail like
// a generation call would, with {"success":false,...}.
type FieldTypeError struct {
	Field string
	Value string
}

// Error implements the error interface.
func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s must be a string, got %s", e.Field, e.Value)
}

// UnmarshalJSON decodes the request leniently. A prompt of null, false, 0
// or "" counts as missing and is reported by Validate, and so does a body
// that is an array. Any other non-string prompt or model yields a
// *FieldTypeError.
func (r *GenerationRequest) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		*r = GenerationRequest{}
		return nil
	}

	var raw struct {
		Prompt json.RawMessage `json:"prompt"`
		Model  json.RawMessage `json:"model"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out GenerationRequest

	if prompt, ok, err := stringField("prompt", raw.Prompt); err != nil {
		if !isFalsy(raw.Prompt) {
			return err
		}
	} else if ok {
		out.Prompt = prompt
	}

	model, ok, err := stringField("model", raw.Model)
	if err != nil {
		return err
	}
	out.Model, out.HasModel = model, ok

	*r = out
	return nil
}

// stringField decodes a JSON string. Absent and null values report ok=false.
func stringField(name string, raw json.RawMessage) (value string, ok bool, err error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false, &FieldTypeError{Field: name, Value: string(raw)}
	}
	return value, true, nil
}

// isFalsy reports whether a non-string JSON value is false, zero or null.
func isFalsy(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "false":
		return true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n == 0
	}
	return false
}

// ValidationError describes a request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the required fields. Only an empty prompt is rejected;
// whitespace is forwarded to the model as is.
func (r *GenerationRequest) Validate() error {
	if r.Prompt == "" {
		return &ValidationError{Field: "prompt", Message: MsgPromptRequired}
	}
	return nil
}

// ModelOr returns the requested model, or fallback when the request did
// not name one.
func (r *GenerationRequest) ModelOr(fallback string) string {
	if r.HasModel || r.Model != "" {
		return r.Model
	}
	return fallback
}
