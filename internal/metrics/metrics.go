package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuestionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_questions_generated_total",
		Help: "Number of interview questions successfully generated.",
	})

	InterviewsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_sessions_started_total",
		Help: "Number of interview sessions created.",
	})

	InterviewsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interview_sessions_completed_total",
		Help: "Number of interview sessions completed, by trigger.",
	}, []string{"trigger"}) // "question_cap" or "explicit_end"

	GenerationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interview_generation_failures_total",
		Help: "Number of failed calls to the generation endpoint, by mode.",
	}, []string{"mode"}) // "question" or "feedback"

	GenerationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_generation_fallbacks_total",
		Help: "Number of generations degraded to the fixed fallback text.",
	})
)
