package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"noorai/interview/internal/llm"
)

// Client talks to an Ollama server's /api/generate endpoint. One request is
// one complete generation: streaming is always off.
type Client struct {
	httpClient *http.Client
	config     *Config
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Response is a pointer so a 2xx body with no text field is distinguishable
// from an empty generation.
type generateResponse struct {
	Response *string `json:"response"`
}

func NewClient(config *Config) (*Client, error) {
	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, requestID string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "ollama",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to encode generation request",
			Err:      err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "ollama",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build generation request",
			Err:      err,
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "ollama",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Generation request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &llm.ProviderError{
			Provider: "ollama",
			Code:     llm.ErrCodeServiceDown,
			Message:  fmt.Sprintf("Generation endpoint returned status %d", resp.StatusCode),
		}
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &llm.ProviderError{
			Provider: "ollama",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to decode generation response",
			Err:      err,
		}
	}

	if parsed.Response == nil {
		return "", llm.ErrNoContent
	}

	return *parsed.Response, nil
}

func (c *Client) GetProviderName() string {
	return "ollama"
}
