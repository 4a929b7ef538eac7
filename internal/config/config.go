package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// app config: AI provider, interview limits, generation timeout
type Config struct {
	Provider string

	// MaxQuestions is the question cap; once the transcript holds this many
	// AI entries the next advance completes the interview instead.
	MaxQuestions int

	// GenerationTimeout bounds one call to the generation endpoint. The
	// model can take minutes on long transcripts.
	GenerationTimeout time.Duration
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:          getEnvOrDefault("AI_PROVIDER", "ollama"),
		MaxQuestions:      getEnvIntOrDefault("INTERVIEW_MAX_QUESTIONS", 5),
		GenerationTimeout: getEnvDurationOrDefault("GENERATION_TIMEOUT", 5*time.Minute),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "ollama" && config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: ollama, gemini")
	}
	if config.MaxQuestions < 1 {
		return errors.New("INTERVIEW_MAX_QUESTIONS must be at least 1")
	}
	// Provider credentials are validated by each provider's own NewConfig()
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
