package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai/jsonschema"
)

type StatusTool struct {
	backend Backend
	timeout time.Duration
}

func (t *StatusTool) Name() string { return "status" }

func (t *StatusTool) Description() string {
	return "Get the status of a Change Request by id using the MDM API /cr/{id}."
}

func (t *StatusTool) Schema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"id": {Type: jsonschema.String, Description: "Change Request ID"},
		},
		Required: []string{"id"},
	}
}

func (t *StatusTool) Invoke(ctx context.Context, args json.RawMessage, auth string) string {
	var in struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return ArgumentError(t.Name(), err)
	}
	if strings.TrimSpace(in.ID) == "" {
		return ArgumentError(t.Name(), errors.New("id is required"))
	}
	return t.Lookup(ctx, auth, in.ID)
}

// Lookup fetches the change request body for id.
func (t *StatusTool) Lookup(ctx context.Context, auth, id string) string {
	return call(ctx, t.Name(), t.timeout, func(ctx context.Context) (string, error) {
		return t.backend.Status(ctx, auth, id)
	})
}
