package ai

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is a backend-neutral chat turn. ToolCalls is set on assistant turns
// that request tools; ToolCallID links a tool turn to the call it answers.
type Message struct {
	Role       string
	Text       string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is one function call requested by the model. Arguments is raw JSON
// exactly as the model produced it and may be malformed.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolSpec advertises a tool to the model. Parameters is a JSON schema value.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  any
}

// Model performs one chat completion round trip.
type Model interface {
	Chat(ctx context.Context, msgs []Message, tools []ToolSpec) (Message, error)
}
