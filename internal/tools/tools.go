package tools

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Vovarama1992/mdm-intent-bridge/internal/ai"
)

const (
	validateTimeout = 20 * time.Second
	createCRTimeout = 20 * time.Second
	statusTimeout   = 15 * time.Second
)

// Set is the fixed, ordered list of tools offered to the model.
type Set struct {
	tools  []Tool
	byName map[string]Tool

	Validate *ValidateTool
	CreateCR *CreateCRTool
	Status   *StatusTool
}

func NewSet(backend Backend) *Set {
	s := &Set{
		Validate: &ValidateTool{backend: backend, timeout: validateTimeout},
		CreateCR: &CreateCRTool{backend: backend, timeout: createCRTimeout},
		Status:   &StatusTool{backend: backend, timeout: statusTimeout},
	}
	s.tools = []Tool{s.Validate, s.CreateCR, s.Status}
	s.byName = make(map[string]Tool, len(s.tools))
	for _, t := range s.tools {
		s.byName[t.Name()] = t
	}
	return s
}

// WithTimeout overrides every per-call timeout. Tests use it to keep
// timeout cases short.
func (s *Set) WithTimeout(d time.Duration) *Set {
	s.Validate.timeout = d
	s.CreateCR.timeout = d
	s.Status.timeout = d
	return s
}

func (s *Set) Tools() []Tool { return s.tools }

func (s *Set) Get(name string) (Tool, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Specs renders the set for the model, in registration order.
func (s *Set) Specs() []ai.ToolSpec {
	out := make([]ai.ToolSpec, 0, len(s.tools))
	for _, t := range s.tools {
		out = append(out, ai.ToolSpec{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Schema(),
		})
	}
	return out
}

// ErrorResult renders the sentinel form "<tool>_error: <details>".
func ErrorResult(tool string, err error) string {
	return fmt.Sprintf("%s_error: %v", tool, err)
}

// ArgumentError is the retry cue for arguments the tool could not use.
func ArgumentError(tool string, err error) string {
	return ErrorResult(tool, fmt.Errorf("invalid arguments: %v; retry with valid JSON arguments", err))
}

// IsError reports whether a result is a sentinel rather than an API body.
func IsError(result string) bool {
	head, _, ok := strings.Cut(result, ": ")
	return ok && strings.HasSuffix(head, "_error") && !strings.ContainsAny(head, " {[\"")
}

func call(ctx context.Context, tool string, timeout time.Duration, fn func(context.Context) (string, error)) string {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	body, err := fn(ctx)
	if err != nil {
		log.Printf("[tool] %s failed after %s: %v", tool, time.Since(started).Round(time.Millisecond), err)
		return ErrorResult(tool, err)
	}
	log.Printf("[tool] %s ok in %s", tool, time.Since(started).Round(time.Millisecond))
	return body
}
