package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Vovarama1992/mdm-intent-bridge/internal/ai"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/mdm"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/textutil"
	"github.com/Vovarama1992/mdm-intent-bridge/internal/tools"
)

const (
	PathAgent = "agent"
	PathStub  = "stub"
)

const defaultMaxSteps = 8

// Gateway is what the orchestrator needs from the model side. *ai.Gateway
// satisfies it.
type Gateway interface {
	Ready() error
	Chat(ctx context.Context, msgs []ai.Message, tools []ai.ToolSpec) (ai.Message, error)
	Generate(ctx context.Context, prompt, system string) (string, error)
}

var _ Gateway = (*ai.Gateway)(nil)

type Result struct {
	Reply string
	CRID  string
	Path  string
}

// Orchestrator keeps no per-request state; one instance serves every request.
type Orchestrator struct {
	gw       Gateway
	tools    *tools.Set
	maxSteps int
}

func New(gw Gateway, set *tools.Set, maxSteps int) *Orchestrator {
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}
	return &Orchestrator{gw: gw, tools: set, maxSteps: maxSteps}
}

// RunAgent drives the model through the tool set until it answers in plain
// text. A gateway that is not ready fails before any tool is touched.
//
// Each step: await a model turn, inspect its tool calls, invoke them in
// order, append the results, repeat. A turn without tool calls is final.
func (o *Orchestrator) RunAgent(ctx context.Context, message, auth string) (Result, error) {
	if err := o.gw.Ready(); err != nil {
		return Result{}, err
	}

	history := []ai.Message{
		{Role: ai.RoleSystem, Text: SystemPrompt},
		{Role: ai.RoleUser, Text: message},
	}
	specs := o.tools.Specs()
	var crID string

	for step := 1; step <= o.maxSteps; step++ {
		turn, err := o.gw.Chat(ctx, history, specs)
		if err != nil {
			return Result{}, &ExecutionError{Step: step, Err: err}
		}

		if len(turn.ToolCalls) == 0 {
			reply := strings.TrimSpace(turn.Text)
			if reply == "" {
				return Result{}, &ExecutionError{Step: step, Err: ErrEmptyAnswer}
			}
			log.Printf("[agent] final answer after %d step(s) cr_id=%q", step, crID)
			return Result{Reply: reply, CRID: crID, Path: PathAgent}, nil
		}

		for i := range turn.ToolCalls {
			if turn.ToolCalls[i].ID == "" {
				turn.ToolCalls[i].ID = fmt.Sprintf("call_%d_%d", step, i)
			}
		}
		history = append(history, ai.Message{
			Role:      ai.RoleAssistant,
			Text:      turn.Text,
			ToolCalls: turn.ToolCalls,
		})

		for _, tc := range turn.ToolCalls {
			out := o.invoke(ctx, tc, auth)
			if tc.Name == o.tools.CreateCR.Name() && !tools.IsError(out) {
				if id := mdm.ParseCRID(out); id != "" {
					crID = id
				}
			}
			history = append(history, ai.Message{
				Role:       ai.RoleTool,
				ToolCallID: tc.ID,
				Text:       out,
			})
		}
	}

	return Result{}, &ExecutionError{Step: o.maxSteps, Err: ErrMaxSteps}
}

func (o *Orchestrator) invoke(ctx context.Context, tc ai.ToolCall, auth string) string {
	t, ok := o.tools.Get(tc.Name)
	if !ok {
		name := tc.Name
		if name == "" {
			name = "tool"
		}
		log.Printf("[agent] unknown tool %q requested", tc.Name)
		return tools.ArgumentError(name, fmt.Errorf("unknown tool %q, use one of %s", tc.Name, o.toolNames()))
	}

	log.Printf("[agent] tool=%s args=%s", tc.Name, textutil.Short(tc.Arguments))
	return t.Invoke(ctx, json.RawMessage(tc.Arguments), auth)
}

func (o *Orchestrator) toolNames() string {
	names := make([]string, 0, len(o.tools.Tools()))
	for _, t := range o.tools.Tools() {
		names = append(names, t.Name())
	}
	return strings.Join(names, ", ")
}

// RunStub is the fixed fallback workflow. It always produces a reply: a
// failing model falls back to ai.StubReply and a failing draft just leaves
// CRID empty.
func (o *Orchestrator) RunStub(ctx context.Context, message, auth string) Result {
	text, err := o.gw.Generate(ctx, fmt.Sprintf(stubPromptFormat, message), stubSystem)
	if err != nil || strings.TrimSpace(text) == "" {
		log.Printf("[agent] stub generate unavailable, using fixed reply: %v", err)
		text = ai.StubReply
	}

	if out := o.tools.Validate.Run(ctx, auth, json.RawMessage(`{"sample":true}`)); tools.IsError(out) {
		log.Printf("[agent] stub validate ignored: %s", textutil.Short(out))
	}

	var crID string
	out := o.tools.CreateCR.Submit(ctx, auth, StubDraft())
	if tools.IsError(out) {
		log.Printf("[agent] stub draft not created: %s", textutil.Short(out))
	} else {
		crID = mdm.ParseCRID(out)
	}

	return Result{Reply: text + StubTrailer, CRID: crID, Path: PathStub}
}
