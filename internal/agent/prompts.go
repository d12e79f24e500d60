package agent

import "github.com/Vovarama1992/mdm-intent-bridge/internal/mdm"

const SystemPrompt = "You are an MDM assistant. Parse user intent to domain/table/operation. " +
	"Use tools to validate and create a draft Change Request with dryRun before applying. " +
	"Always return a concise summary and include the CR id if created."

const (
	stubPromptFormat = "User request: %s. Summarize intended MDM change and next step."
	stubSystem       = "You are an MDM assistant that prepares change requests and does dry-runs first."

	// StubTrailer closes every stub-path reply.
	StubTrailer = "\nDraft change request created (stub)."
)

// StubDraft is the illustrative draft the stub path files. Always dry-run.
func StubDraft() mdm.ChangeRequestDraft {
	return mdm.ChangeRequestDraft{
		Domain:          "supplier",
		Table:           "supplier_address",
		Operation:       mdm.OperationUpdate,
		Filter:          map[string]any{"supplier_id": 1},
		ProposedChanges: map[string]any{"city": "New City"},
		DryRun:          true,
	}
}
