package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("INTERVIEW_MAX_QUESTIONS", "")
	t.Setenv("GENERATION_TIMEOUT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Provider != "ollama" {
		t.Errorf("expected default provider ollama, got %q", cfg.Provider)
	}
	if cfg.MaxQuestions != 5 {
		t.Errorf("expected default question cap 5, got %d", cfg.MaxQuestions)
	}
	if cfg.GenerationTimeout != 5*time.Minute {
		t.Errorf("expected default timeout 5m, got %v", cfg.GenerationTimeout)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("INTERVIEW_MAX_QUESTIONS", "8")
	t.Setenv("GENERATION_TIMEOUT", "90s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Provider != "gemini" {
		t.Errorf("expected provider gemini, got %q", cfg.Provider)
	}
	if cfg.MaxQuestions != 8 {
		t.Errorf("expected question cap 8, got %d", cfg.MaxQuestions)
	}
	if cfg.GenerationTimeout != 90*time.Second {
		t.Errorf("expected timeout 90s, got %v", cfg.GenerationTimeout)
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "openai")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestLoadConfigRejectsZeroQuestionCap(t *testing.T) {
	t.Setenv("AI_PROVIDER", "ollama")
	t.Setenv("INTERVIEW_MAX_QUESTIONS", "0")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for question cap below 1")
	}
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("AI_PROVIDER", "ollama")
	t.Setenv("INTERVIEW_MAX_QUESTIONS", "lots")
	t.Setenv("GENERATION_TIMEOUT", "soon")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.MaxQuestions != 5 || cfg.GenerationTimeout != 5*time.Minute {
		t.Errorf("malformed values should fall back to defaults, got %+v", cfg)
	}
}
