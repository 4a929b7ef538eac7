package generation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"noorai/interview/internal/llm"
	"noorai/interview/internal/metrics"
	"noorai/interview/internal/prompts"
)

// Fixed fallback strings used when the endpoint answers but produces no
// usable text. Callers append them to the transcript like any other output.
const (
	QuestionFallback = "Could not generate a question at this time."
	FeedbackFallback = "Could not generate feedback at this time."
)

// Gateway builds prompts from interview content and delegates to the
// configured LLM provider, sanitizing whatever comes back. It holds no
// session state; a failed call leaves nothing to roll back.
type Gateway struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewGateway(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// GenerateQuestion produces the next interview question. firstQuestion
// selects the empty-history prompt variant used when nothing has been asked
// yet.
func (g *Gateway) GenerateQuestion(ctx context.Context, resume, jobDescription, transcript string, firstQuestion bool) (string, error) {
	variant := "followup"
	if firstQuestion {
		variant = "opening"
	}

	prompt, err := g.prompts.BuildPrompt("question", variant, map[string]string{
		"Resume":         resume,
		"JobDescription": jobDescription,
		"Transcript":     transcript,
	})
	if err != nil {
		return "", err
	}

	return g.generate(ctx, "question", prompt, QuestionFallback)
}

// GenerateFeedback produces the structured performance report over the full
// transcript.
func (g *Gateway) GenerateFeedback(ctx context.Context, resume, jobDescription, transcript string) (string, error) {
	prompt, err := g.prompts.BuildPrompt("feedback", "default", map[string]string{
		"Resume":         resume,
		"JobDescription": jobDescription,
		"Transcript":     transcript,
	})
	if err != nil {
		return "", err
	}

	return g.generate(ctx, "feedback", prompt, FeedbackFallback)
}

func (g *Gateway) generate(ctx context.Context, mode, prompt, fallback string) (string, error) {
	requestID := uuid.New().String()
	started := time.Now()

	raw, err := g.provider.Generate(ctx, prompt, requestID)
	if err != nil {
		if errors.Is(err, llm.ErrNoContent) {
			// Soft degradation: one flaky generation must not abort a
			// whole session.
			g.logger.Warn("generation returned no content, degrading to fallback",
				zap.String("mode", mode),
				zap.String("request_id", requestID))
			metrics.GenerationFallbacks.Inc()
			return fallback, nil
		}
		metrics.GenerationFailures.WithLabelValues(mode).Inc()
		g.logger.Error("generation request failed",
			zap.String("mode", mode),
			zap.String("request_id", requestID),
			zap.Error(err))
		return "", err
	}

	cleaned, usable := Sanitize(raw)
	if !usable || cleaned == "" {
		g.logger.Warn("generation output unusable after sanitization, degrading to fallback",
			zap.String("mode", mode),
			zap.String("request_id", requestID))
		metrics.GenerationFallbacks.Inc()
		return fallback, nil
	}

	g.logger.Info("generation succeeded",
		zap.String("mode", mode),
		zap.String("request_id", requestID),
		zap.String("provider", g.provider.GetProviderName()),
		zap.Int64("elapsed_ms", time.Since(started).Milliseconds()))

	return cleaned, nil
}
