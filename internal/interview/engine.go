package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"noorai/interview/internal/extract"
	"noorai/interview/internal/generation"
	"noorai/interview/internal/metrics"
	"noorai/interview/internal/models"
	"noorai/interview/internal/store"
)

var (
	// ErrAlreadyCompleted marks a mutation attempted on a terminal session.
	ErrAlreadyCompleted = errors.New("interview is already completed")

	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("invalid input")
)

// ClosingMessage is returned when the question cap completes the interview.
const ClosingMessage = "Interview completed. Thank you for your time!"

// Engine is the interview state machine. Every operation is one read, at
// most one generation call, one transcript mutation, and one write, strictly
// in that order; nothing is cached between calls.
type Engine struct {
	store        store.InterviewStore
	gateway      *generation.Gateway
	maxQuestions int
	logger       *zap.Logger

	// now is swappable in tests
	now func() time.Time
}

func NewEngine(interviewStore store.InterviewStore, gateway *generation.Gateway, maxQuestions int, logger *zap.Logger) *Engine {
	return &Engine{
		store:        interviewStore,
		gateway:      gateway,
		maxQuestions: maxQuestions,
		logger:       logger,
		now:          time.Now,
	}
}

// Start creates a session from already-extracted text and asks the opening
// question.
func (e *Engine) Start(ctx context.Context, resumeText, jobDescription string) (*models.InterviewResponse, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: resume content is empty", ErrValidation)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is empty", ErrValidation)
	}

	transcript := models.Transcript{}.Append(models.SpeakerSystem, "Interview started.")

	interview := &models.Interview{
		ResumeContent:  resumeText,
		JobDescription: jobDescription,
		Transcript:     transcript.String(),
		Status:         models.StatusInProgress,
		CreatedAt:      e.now(),
	}
	if err := e.store.Create(ctx, interview); err != nil {
		return nil, err
	}
	metrics.InterviewsStarted.Inc()

	question, err := e.askQuestion(ctx, interview, transcript, true)
	if err != nil {
		return nil, err
	}

	e.logger.Info("interview started",
		zap.Uint("interview_id", interview.ID))

	return &models.InterviewResponse{ID: interview.ID, Question: question}, nil
}

// StartFromUpload creates a session from uploaded PDF bytes. The résumé must
// yield a candidate name or email; an unidentifiable résumé is rejected
// rather than silently proceeding. It returns the opening transcript so the
// caller can render the greeting together with the first question.
func (e *Engine) StartFromUpload(ctx context.Context, resumePDF, jobDescriptionPDF []byte) (*models.InterviewResponse, error) {
	if len(resumePDF) == 0 {
		return nil, fmt.Errorf("%w: no resume file uploaded", ErrValidation)
	}
	if len(jobDescriptionPDF) == 0 {
		return nil, fmt.Errorf("%w: no job description file uploaded", ErrValidation)
	}

	resumeText, err := extract.PlainText(resumePDF)
	if err != nil {
		return nil, fmt.Errorf("%w: resume: %v", ErrValidation, err)
	}
	name, email := extract.IdentityFromText(resumeText)
	if name == "" && email == "" {
		return nil, fmt.Errorf("%w: could not extract a name or email from the resume", ErrValidation)
	}

	jobDescriptionText, err := extract.PlainText(jobDescriptionPDF)
	if err != nil {
		return nil, fmt.Errorf("%w: job description: %v", ErrValidation, err)
	}

	transcript := models.Transcript{}.
		Append(models.SpeakerSystem, "Resume and job description uploaded.").
		Append(models.SpeakerSystem, fmt.Sprintf(
			"Thank you for sharing your resume and job description, %s. I'm NoorAI, your AI interview assistant. Let's begin the interview.",
			displayName(name, email)))

	interview := &models.Interview{
		UserName:          name,
		UserEmail:         email,
		ResumeContent:     resumeText,
		JobDescription:    jobDescriptionText,
		ResumeRaw:         resumePDF,
		JobDescriptionRaw: jobDescriptionPDF,
		Transcript:        transcript.String(),
		Status:            models.StatusInProgress,
		CreatedAt:         e.now(),
	}
	if err := e.store.Create(ctx, interview); err != nil {
		return nil, err
	}
	metrics.InterviewsStarted.Inc()

	if _, err := e.askQuestion(ctx, interview, transcript, true); err != nil {
		return nil, err
	}

	e.logger.Info("interview started from upload",
		zap.Uint("interview_id", interview.ID),
		zap.String("candidate", name))

	// The upload flow returns the whole opening transcript, greeting
	// included.
	return &models.InterviewResponse{ID: interview.ID, Question: interview.Transcript}, nil
}

// NextQuestion advances the interview by one exchange. A non-blank answer is
// recorded first. Reaching the question cap completes the interview on this
// read instead of producing another question; the check is deliberately
// deferred to here, there is no background timer.
func (e *Engine) NextQuestion(ctx context.Context, id uint, answer string) (*models.InterviewResponse, error) {
	interview, err := e.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview.Completed() {
		return nil, ErrAlreadyCompleted
	}

	transcript := interview.Entries()
	if strings.TrimSpace(answer) != "" {
		transcript = transcript.Append(models.SpeakerCandidate, strings.TrimSpace(answer))
	}

	if transcript.QuestionCount() >= e.maxQuestions {
		feedback, err := e.complete(ctx, interview, transcript,
			"Question limit reached. Interview concluded.", "question_cap")
		if err != nil {
			return nil, err
		}
		return &models.InterviewResponse{
			ID:       interview.ID,
			Question: ClosingMessage,
			Feedback: feedback,
		}, nil
	}

	question, err := e.askQuestion(ctx, interview, transcript, false)
	if err != nil {
		return nil, err
	}

	return &models.InterviewResponse{ID: interview.ID, Question: question}, nil
}

// End completes an in-progress interview regardless of question count and
// returns the full feedback report.
func (e *Engine) End(ctx context.Context, id uint) (*models.FeedbackResponse, error) {
	interview, err := e.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview.Completed() {
		return nil, ErrAlreadyCompleted
	}

	closing := fmt.Sprintf("Interview ended by candidate at %s.", e.now().UTC().Format(time.RFC3339))
	feedback, err := e.complete(ctx, interview, interview.Entries(), closing, "explicit_end")
	if err != nil {
		return nil, err
	}

	return &models.FeedbackResponse{
		InterviewID: interview.ID,
		Feedback:    feedback,
		Transcript:  interview.Transcript,
		UserName:    interview.UserName,
		UserEmail:   interview.UserEmail,
		CreatedAt:   interview.CreatedAt,
		CompletedAt: interview.CompletedAt,
	}, nil
}

// UpdateJobDescription replaces the job description on an in-progress
// session.
func (e *Engine) UpdateJobDescription(ctx context.Context, id uint, jobDescription string) (*models.InterviewSummary, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is empty", ErrValidation)
	}

	interview, err := e.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview.Completed() {
		return nil, ErrAlreadyCompleted
	}

	interview.JobDescription = jobDescription
	if err := e.store.Save(ctx, interview); err != nil {
		return nil, err
	}

	summary := models.SummaryFrom(interview)
	return &summary, nil
}

// Summary returns the read-only projection for one interview.
func (e *Engine) Summary(ctx context.Context, id uint) (*models.InterviewSummary, error) {
	interview, err := e.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := models.SummaryFrom(interview)
	return &summary, nil
}

// Summaries returns all interviews, most recently created first.
func (e *Engine) Summaries(ctx context.Context) ([]models.InterviewSummary, error) {
	interviews, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.InterviewSummary, 0, len(interviews))
	for i := range interviews {
		summaries = append(summaries, models.SummaryFrom(&interviews[i]))
	}
	return summaries, nil
}

// askQuestion generates one question and appends it. The transcript is only
// persisted after a successful generation, so a failed call leaves the
// session exactly as it was read.
func (e *Engine) askQuestion(ctx context.Context, interview *models.Interview, transcript models.Transcript, first bool) (string, error) {
	question, err := e.gateway.GenerateQuestion(ctx,
		interview.ResumeContent,
		interview.JobDescription,
		transcript.String(),
		first)
	if err != nil {
		return "", err
	}

	interview.Transcript = transcript.Append(models.SpeakerAI, question).String()
	if err := e.store.Save(ctx, interview); err != nil {
		return "", err
	}
	metrics.QuestionsGenerated.Inc()

	return question, nil
}

// complete appends the closing entry, persists it, then generates feedback
// and transitions the session to Completed in one save. The closing entry is
// recorded before the feedback call: if feedback generation fails the
// session stays InProgress with the closing line already in the transcript,
// and a retry regenerates feedback over the same transcript.
func (e *Engine) complete(ctx context.Context, interview *models.Interview, transcript models.Transcript, closing, trigger string) (string, error) {
	transcript = transcript.Append(models.SpeakerSystem, closing)
	interview.Transcript = transcript.String()
	if err := e.store.Save(ctx, interview); err != nil {
		return "", err
	}

	feedback, err := e.gateway.GenerateFeedback(ctx,
		interview.ResumeContent,
		interview.JobDescription,
		interview.Transcript)
	if err != nil {
		return "", err
	}

	interview.Complete(feedback, e.now())
	if err := e.store.Save(ctx, interview); err != nil {
		return "", err
	}
	metrics.InterviewsCompleted.WithLabelValues(trigger).Inc()

	e.logger.Info("interview completed",
		zap.Uint("interview_id", interview.ID),
		zap.String("trigger", trigger),
		zap.Int("questions_asked", transcript.QuestionCount()))

	return feedback, nil
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}
