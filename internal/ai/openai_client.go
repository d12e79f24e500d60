package ai

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/mdm-intent-bridge/internal/config"
)

const (
	temperature    = 0.2
	defaultTimeout = 60 * time.Second
)

// OpenAIClient speaks the chat completions protocol. Both Ollama (through its
// OpenAI-compatible /v1 API) and Azure OpenAI are served by it.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOllamaClient targets a local Ollama server.
func NewOllamaClient(cfg config.AI) *OpenAIClient {
	oc := openai.DefaultConfig("ollama")
	oc.BaseURL = strings.TrimRight(cfg.OllamaBaseURL, "/") + "/v1"
	return newOpenAIClient(oc, cfg.OllamaModel, cfg.Timeout)
}

// NewAzureClient targets an Azure OpenAI deployment.
func NewAzureClient(cfg config.AI) (*OpenAIClient, error) {
	if cfg.AzureDeployment == "" {
		return nil, &ConfigError{Reason: "AZURE_OPENAI_DEPLOYMENT is required when USE_AZURE_OPENAI=true"}
	}
	if cfg.AzureEndpoint == "" {
		return nil, &ConfigError{Reason: "AZURE_OPENAI_ENDPOINT is required when USE_AZURE_OPENAI=true"}
	}

	oc := openai.DefaultAzureConfig(cfg.AzureAPIKey, cfg.AzureEndpoint)
	oc.APIVersion = cfg.AzureAPIVersion
	deployment := cfg.AzureDeployment
	oc.AzureModelMapperFunc = func(string) string { return deployment }

	return newOpenAIClient(oc, deployment, cfg.Timeout), nil
}

func newOpenAIClient(oc openai.ClientConfig, model string, timeout time.Duration) *OpenAIClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(oc),
		model:  model,
	}
}

func (c *OpenAIClient) Chat(ctx context.Context, history []Message, tools []ToolSpec) (Message, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, toOpenAIMessage(m))
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: temperature,
	}
	for _, t := range tools {
		req.Tools = append(req.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Println("[ai] chat completion error:", err)
		return Message{}, err
	}

	if len(resp.Choices) == 0 {
		log.Println("[ai] empty choices")
		return Message{}, errors.New("ai: no choices in response")
	}

	return fromOpenAIMessage(resp.Choices[0].Message), nil
}

func toOpenAIMessage(m Message) openai.ChatCompletionMessage {
	out := openai.ChatCompletionMessage{
		Role:       m.Role,
		Content:    m.Text,
		ToolCallID: m.ToolCallID,
	}
	for _, tc := range m.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, openai.ToolCall{
			ID:   tc.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      tc.Name,
				Arguments: tc.Arguments,
			},
		})
	}
	return out
}

func fromOpenAIMessage(m openai.ChatCompletionMessage) Message {
	out := Message{
		Role: RoleAssistant,
		Text: m.Content,
	}
	for _, tc := range m.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out
}
