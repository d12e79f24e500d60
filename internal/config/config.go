package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MDMBaseURL  string
	DatabaseURL string
	MaxSteps    int
	AI          AI
}

// AI holds the model backend flags. UseOllama wins over UseAzure.
type AI struct {
	// Timeout bounds every single model call.
	Timeout time.Duration

	UseOllama     bool
	OllamaModel   string
	OllamaBaseURL string

	UseAzure        bool
	AzureDeployment string
	AzureAPIVersion string
	AzureEndpoint   string
	AzureAPIKey     string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() Config {
	return Config{
		Port:        getEnv("PORT", "8000"),
		MDMBaseURL:  strings.TrimRight(getEnv("JAVA_API_URL", "http://localhost:8080"), "/"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MaxSteps:    getEnvInt("AGENT_MAX_STEPS", 8),
		AI: AI{
			Timeout: getEnvDuration("AI_TIMEOUT", 60*time.Second),

			UseOllama:     getEnvBool("USE_OLLAMA"),
			OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.1"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),

			UseAzure:        getEnvBool("USE_AZURE_OPENAI"),
			AzureDeployment: strings.TrimSpace(os.Getenv("AZURE_OPENAI_DEPLOYMENT")),
			AzureAPIVersion: getEnv("AZURE_OPENAI_API_VERSION", "2024-08-01-preview"),
			AzureEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
			AzureAPIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
		},
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("30s") or plain seconds ("30").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

// getEnvBool treats only a case-insensitive "true" as set.
func getEnvBool(key string) bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(key)), "true")
}
