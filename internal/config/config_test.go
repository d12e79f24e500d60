package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "JAVA_API_URL", "DATABASE_URL", "AGENT_MAX_STEPS", "AI_TIMEOUT",
		"USE_OLLAMA", "OLLAMA_MODEL", "OLLAMA_BASE_URL",
		"USE_AZURE_OPENAI", "AZURE_OPENAI_DEPLOYMENT", "AZURE_OPENAI_API_VERSION",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, "http://localhost:8080", cfg.MDMBaseURL)
	require.Empty(t, cfg.DatabaseURL)
	require.Equal(t, 8, cfg.MaxSteps)
	require.False(t, cfg.AI.UseOllama)
	require.False(t, cfg.AI.UseAzure)
	require.Equal(t, "llama3.1", cfg.AI.OllamaModel)
	require.Equal(t, "http://localhost:11434", cfg.AI.OllamaBaseURL)
	require.Equal(t, "2024-08-01-preview", cfg.AI.AzureAPIVersion)
	require.Equal(t, 60*time.Second, cfg.AI.Timeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("JAVA_API_URL", "http://mdm:9090/")
	t.Setenv("USE_OLLAMA", "TRUE")
	t.Setenv("USE_AZURE_OPENAI", "yes")
	t.Setenv("AGENT_MAX_STEPS", "3")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT", " gpt-4o ")

	cfg := FromEnv()
	require.Equal(t, "http://mdm:9090", cfg.MDMBaseURL)
	require.True(t, cfg.AI.UseOllama)
	require.False(t, cfg.AI.UseAzure, "only \"true\" enables a flag")
	require.Equal(t, 3, cfg.MaxSteps)
	require.Equal(t, "gpt-4o", cfg.AI.AzureDeployment)
}

func TestFromEnv_BadMaxStepsFallsBack(t *testing.T) {
	t.Setenv("AGENT_MAX_STEPS", "-1")
	require.Equal(t, 8, FromEnv().MaxSteps)

	t.Setenv("AGENT_MAX_STEPS", "abc")
	require.Equal(t, 8, FromEnv().MaxSteps)
}

func TestFromEnv_AITimeout(t *testing.T) {
	t.Setenv("AI_TIMEOUT", "15s")
	require.Equal(t, 15*time.Second, FromEnv().AI.Timeout)

	t.Setenv("AI_TIMEOUT", "20")
	require.Equal(t, 20*time.Second, FromEnv().AI.Timeout)

	t.Setenv("AI_TIMEOUT", "0")
	require.Equal(t, 60*time.Second, FromEnv().AI.Timeout)
}
