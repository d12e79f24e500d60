package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai/jsonschema"
)

type ValidateTool struct {
	backend Backend
	timeout time.Duration
}

func (t *ValidateTool) Name() string { return "validate" }

func (t *ValidateTool) Description() string {
	return "Validate a proposed change request against schema and constraints using the MDM API /validate endpoint."
}

func (t *ValidateTool) Schema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"payload": {
				Type:        jsonschema.Object,
				Description: "Validation input JSON to send to the /validate endpoint",
			},
		},
		Required: []string{"payload"},
	}
}

// Invoke accepts {"payload": {...}}; a bare object without the wrapper is
// sent as the payload itself.
func (t *ValidateTool) Invoke(ctx context.Context, args json.RawMessage, auth string) string {
	var in struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return ArgumentError(t.Name(), err)
	}

	payload := in.Payload
	if len(bytes.TrimSpace(payload)) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		payload = args
	}
	if !json.Valid(payload) || bytes.TrimSpace(payload)[0] != '{' {
		return ArgumentError(t.Name(), errors.New("payload must be a JSON object"))
	}
	return t.Run(ctx, auth, payload)
}

// Run posts payload to /validate.
func (t *ValidateTool) Run(ctx context.Context, auth string, payload json.RawMessage) string {
	return call(ctx, t.Name(), t.timeout, func(ctx context.Context) (string, error) {
		return t.backend.Validate(ctx, auth, payload)
	})
}
