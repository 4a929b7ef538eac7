package ollama

import (
	"os"
	"time"
)

// holds Ollama-specific configuration
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

func NewConfig() (*Config, error) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "deepseek-r1:8b" // default model
	}

	timeout := 5 * time.Minute
	if raw := os.Getenv("OLLAMA_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			timeout = parsed
		}
	}

	return &Config{
		BaseURL: baseURL,
		Model:   model,
		Timeout: timeout,
	}, nil
}
