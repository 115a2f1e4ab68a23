package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestGenerationRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      GenerationRequest
		wantField string
	}{
		{name: "prompt", body: `{"prompt":"hi"}`, want: GenerationRequest{Prompt: "hi"}},
		{name: "model present", body: `{"prompt":"hi","model":"m"}`, want: GenerationRequest{Prompt: "hi", Model: "m", HasModel: true}},
		{name: "empty model present", body: `{"prompt":"hi","model":""}`, want: GenerationRequest{Prompt: "hi", HasModel: true}},
		{name: "null prompt", body: `{"prompt":null}`},
		{name: "false prompt", body: `{"prompt":false}`},
		{name: "zero prompt", body: `{"prompt":0.0}`},
		{name: "array body", body: `["hi"]`},
		{name: "numeric prompt", body: `{"prompt":7}`, wantField: "prompt"},
		{name: "list prompt", body: `{"prompt":["a"]}`, wantField: "prompt"},
		{name: "boolean model", body: `{"prompt":"hi","model":true}`, wantField: "model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got GenerationRequest
			err := json.Unmarshal([]byte(tt.body), &got)

			if tt.wantField != "" {
				var typeErr *FieldTypeError
				if !errors.As(err, &typeErr) {
					t.Fatalf("error = %v, want *FieldTypeError", err)
				}
				if typeErr.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", typeErr.Field, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGenerationRequest_ModelOr(t *testing.T) {
	tests := []struct {
		name string
		req  GenerationRequest
		want string
	}{
		{name: "absent", req: GenerationRequest{}, want: "fallback"},
		{name: "named", req: GenerationRequest{Model: "m"}, want: "m"},
		{name: "explicitly empty", req: GenerationRequest{HasModel: true}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.ModelOr("fallback"); got != tt.want {
				t.Errorf("ModelOr() = %q, want %q", got, tt.want)
			}
		})
	}
}
