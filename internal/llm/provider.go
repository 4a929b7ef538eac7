package llm

import (
	"context"
	"errors"
)

// Provider is one text-generation backend. Generate sends a fully built
// prompt and returns the raw model output; sanitization happens upstream in
// the generation gateway.
type Provider interface {
	Generate(ctx context.Context, prompt string, requestID string) (string, error)
	GetProviderName() string
}

// ErrGenerationUnavailable marks transport failures and non-success statuses
// from the generation endpoint. Callers must not have mutated session state
// before the call, so retrying at their discretion is safe.
var ErrGenerationUnavailable = errors.New("generation endpoint unavailable")

// ErrNoContent means the endpoint answered successfully but produced no
// usable text field. The gateway degrades to a fixed fallback string instead
// of failing the whole session on it.
var ErrNoContent = errors.New("no content in generation response")

// ProviderError carries provider-specific detail behind the sentinel errors.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is lets errors.Is match transport-level failures against the sentinel.
func (e *ProviderError) Is(target error) bool {
	return target == ErrGenerationUnavailable &&
		(e.Code == ErrCodeServiceDown || e.Code == ErrCodeTimeout)
}

// Common error codes
// For current and future use across different providers
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)
