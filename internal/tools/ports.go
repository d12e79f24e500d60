package tools

import (
	"context"
	"encoding/json"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/Vovarama1992/mdm-intent-bridge/internal/mdm"
)

// Tool is one capability the model may call. Invoke never fails: problems
// come back as a "<name>_error: ..." result for the model to read.
type Tool interface {
	Name() string
	Description() string
	Schema() jsonschema.Definition
	Invoke(ctx context.Context, args json.RawMessage, auth string) string
}

// Backend is the set of MDM API calls the tools wrap. *mdm.Client satisfies it.
type Backend interface {
	Validate(ctx context.Context, auth string, payload json.RawMessage) (string, error)
	CreateCR(ctx context.Context, auth string, draft mdm.ChangeRequestDraft) (string, error)
	Status(ctx context.Context, auth string, id string) (string, error)
}

var _ Backend = (*mdm.Client)(nil)
