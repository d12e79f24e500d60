package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/Vovarama1992/mdm-intent-bridge/internal/mdm"
)

type CreateCRTool struct {
	backend Backend
	timeout time.Duration
}

type createCRArgs struct {
	Domain          string         `json:"domain"`
	Table           string         `json:"table"`
	Operation       string         `json:"operation"`
	Filter          map[string]any `json:"filter"`
	ProposedChanges map[string]any `json:"proposed_changes"`
	DryRun          *bool          `json:"dryRun"`
}

func (t *CreateCRTool) Name() string { return "create_cr" }

func (t *CreateCRTool) Description() string {
	return "Create a draft Change Request via the MDM API /cr?dryRun=true. " +
		"dryRun defaults to true; pass false only when the user explicitly asks to apply. " +
		"Returns the CR id and diff_preview."
}

func (t *CreateCRTool) Schema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"domain": {Type: jsonschema.String, Description: "Business domain, e.g. supplier"},
			"table":  {Type: jsonschema.String, Description: "Target table, e.g. supplier_address"},
			"operation": {
				Type:        jsonschema.String,
				Description: "One of UPDATE|INSERT|DELETE|UPSERT",
				Enum:        []string{"UPDATE", "INSERT", "DELETE", "UPSERT"},
			},
			"filter":           {Type: jsonschema.Object, Description: "Row selector, column -> value"},
			"proposed_changes": {Type: jsonschema.Object, Description: "New values, column -> value"},
			"dryRun":           {Type: jsonschema.Boolean, Description: "Validate and stage only; defaults to true"},
		},
		Required: []string{"domain", "table", "operation"},
	}
}

func (t *CreateCRTool) Invoke(ctx context.Context, args json.RawMessage, auth string) string {
	var in createCRArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return ArgumentError(t.Name(), err)
	}

	draft, err := in.draft()
	if err != nil {
		return ArgumentError(t.Name(), err)
	}
	return t.Submit(ctx, auth, draft)
}

// Submit sends a ready draft. The draft's DryRun is used as is.
func (t *CreateCRTool) Submit(ctx context.Context, auth string, draft mdm.ChangeRequestDraft) string {
	return call(ctx, t.Name(), t.timeout, func(ctx context.Context) (string, error) {
		return t.backend.CreateCR(ctx, auth, draft)
	})
}

func (a createCRArgs) draft() (mdm.ChangeRequestDraft, error) {
	domain := strings.TrimSpace(a.Domain)
	table := strings.TrimSpace(a.Table)
	if domain == "" || table == "" {
		return mdm.ChangeRequestDraft{}, errors.New("domain and table are required")
	}

	op, err := mdm.ParseOperation(a.Operation)
	if err != nil {
		return mdm.ChangeRequestDraft{}, err
	}

	dryRun := true
	if a.DryRun != nil {
		dryRun = *a.DryRun
	}

	return mdm.ChangeRequestDraft{
		Domain:          domain,
		Table:           table,
		Operation:       op,
		Filter:          a.Filter,
		ProposedChanges: a.ProposedChanges,
		DryRun:          dryRun,
	}, nil
}
