// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration, loaded once at startup.
type Config struct {
	Port      string
	DataDir   string
	LogLevel  string
	LogFormat string
	DebugMode bool

	// LLM provider selection and credentials.
	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Retrieval service endpoint. Empty disables retrieval entirely;
	// the pipeline then runs with no reference text.
	RetrievalURL string

	// Admission and streaming limits. Generation is the most expensive
	// operation in the system, so its window is much tighter than the
	// default API limits.
	GenerateRateLimit  int
	GenerateRateWindow time.Duration
	StreamTimeout      time.Duration
	MaxOutputTokens    int
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DataDir:   getEnvPath("DATA_DIR", "data"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		DebugMode: getEnvBool("DEBUG_MODE", false),

		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		LLMModel:        getEnv("LLM_MODEL", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),

		RetrievalURL: getEnv("RETRIEVAL_URL", ""),

		GenerateRateLimit:  getEnvInt("GENERATE_RATE_LIMIT", 5),
		GenerateRateWindow: time.Duration(getEnvInt("GENERATE_RATE_WINDOW_SECONDS", 60)) * time.Second,
		StreamTimeout:      time.Duration(getEnvInt("STREAM_TIMEOUT_SECONDS", 120)) * time.Second,
		MaxOutputTokens:    getEnvInt("MAX_OUTPUT_TOKENS", 4096),
	}

	return cfg, nil
}

// LLMConfig builds the provider configuration map handed to the llm registry.
func (c *Config) LLMConfig() map[string]string {
	llmCfg := map[string]string{}
	switch c.LLMProvider {
	case "anthropic":
		llmCfg["api_key"] = c.AnthropicAPIKey
	default:
		llmCfg["api_key"] = c.OpenAIAPIKey
	}
	if c.LLMModel != "" {
		llmCfg["default_model"] = c.LLMModel
	}
	return llmCfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			fmt.Printf("warning: failed to create directory %s: %v\n", path, err)
		}
	}

	return path
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
