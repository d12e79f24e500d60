package ai

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Vovarama1992/mdm-intent-bridge/internal/config"
)

// StubReply is what Generate answers when no backend is selected.
const StubReply = "[stub] I parsed your intent. Creating a draft change request with a dry run."

const (
	BackendNone   = "none"
	BackendOllama = "ollama"
	BackendAzure  = "azure"
)

// ConfigError means no usable model backend, or a required backend parameter
// is missing.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "ai: configuration: " + e.Reason
}

var ErrNotConfigured error = &ConfigError{
	Reason: "no model backend selected, set USE_OLLAMA=true or USE_AZURE_OPENAI=true",
}

// Gateway is built once at startup and shared by all requests. It holds
// either a ready Model or the reason there is none.
type Gateway struct {
	backend string
	model   Model
	err     error
	timeout time.Duration
}

// NewGateway picks the backend in fixed order: Ollama, then Azure, then none.
func NewGateway(cfg config.AI) *Gateway {
	g := newGateway(cfg)
	if cfg.Timeout > 0 {
		g.timeout = cfg.Timeout
	}
	return g
}

func newGateway(cfg config.AI) *Gateway {
	switch {
	case cfg.UseOllama:
		log.Printf("[ai] backend=ollama model=%s url=%s", cfg.OllamaModel, cfg.OllamaBaseURL)
		return &Gateway{backend: BackendOllama, model: NewOllamaClient(cfg), timeout: defaultTimeout}

	case cfg.UseAzure:
		c, err := NewAzureClient(cfg)
		if err != nil {
			log.Printf("[ai] backend=azure unusable: %v", err)
			return &Gateway{backend: BackendAzure, err: err, timeout: defaultTimeout}
		}
		log.Printf("[ai] backend=azure deployment=%s api_version=%s", cfg.AzureDeployment, cfg.AzureAPIVersion)
		return &Gateway{backend: BackendAzure, model: c, timeout: defaultTimeout}
	}

	log.Println("[ai] no model backend selected, stub replies only")
	return &Gateway{backend: BackendNone, err: ErrNotConfigured, timeout: defaultTimeout}
}

// NewGatewayWithModel wraps an already constructed Model.
func NewGatewayWithModel(backend string, m Model) *Gateway {
	if m == nil {
		return &Gateway{backend: backend, err: ErrNotConfigured, timeout: defaultTimeout}
	}
	return &Gateway{backend: backend, model: m, timeout: defaultTimeout}
}

// WithTimeout changes the per-call deadline.
func (g *Gateway) WithTimeout(d time.Duration) *Gateway {
	if d > 0 {
		g.timeout = d
	}
	return g
}

func (g *Gateway) Backend() string { return g.backend }

// Ready reports why the tool-driven path cannot run, or nil.
func (g *Gateway) Ready() error { return g.err }

// Chat forwards one round trip to the selected backend.
func (g *Gateway) Chat(ctx context.Context, msgs []Message, tools []ToolSpec) (Message, error) {
	if g.err != nil {
		return Message{}, g.err
	}
	return g.chat(ctx, msgs, tools)
}

// chat puts a deadline on every model call so a hung backend turns into an
// error instead of blocking the request.
func (g *Gateway) chat(ctx context.Context, msgs []Message, tools []ToolSpec) (Message, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.model.Chat(ctx, msgs, tools)
}

// Generate answers a single prompt without tools. With no backend selected it
// returns StubReply; a selected but misconfigured backend is an error.
func (g *Gateway) Generate(ctx context.Context, prompt, system string) (string, error) {
	if errors.Is(g.err, ErrNotConfigured) {
		return StubReply, nil
	}
	if g.err != nil {
		return "", g.err
	}

	msgs := make([]Message, 0, 2)
	if system != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Text: system})
	}
	msgs = append(msgs, Message{Role: RoleUser, Text: prompt})

	out, err := g.chat(ctx, msgs, nil)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}
