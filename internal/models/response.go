package models

import "time"

// InterviewResponse is returned by the start and respond endpoints. Feedback
// is only present when the exchange completed the interview.
type InterviewResponse struct {
	ID       uint   `json:"id"`
	Question string `json:"question"`
	Feedback string `json:"feedback,omitempty"`
}

// FeedbackResponse is the full report returned when an interview ends.
type FeedbackResponse struct {
	InterviewID uint       `json:"interview_id"`
	Feedback    string     `json:"feedback"`
	Transcript  string     `json:"transcript"`
	UserName    string     `json:"user_name"`
	UserEmail   string     `json:"user_email"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// InterviewSummary is the read-only projection used by list and detail
// endpoints. QuestionCount and Duration are recomputed, never stored.
type InterviewSummary struct {
	ID             uint            `json:"id"`
	UserName       string          `json:"user_name"`
	UserEmail      string          `json:"user_email"`
	JobDescription string          `json:"job_description"`
	Transcript     string          `json:"transcript"`
	Feedback       *string         `json:"feedback,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	Status         InterviewStatus `json:"status"`
	QuestionCount  int             `json:"question_count"`
	DurationSecs   *float64        `json:"duration_seconds,omitempty"`
}

// SummaryFrom projects an interview into its summary form.
func SummaryFrom(i *Interview) InterviewSummary {
	summary := InterviewSummary{
		ID:             i.ID,
		UserName:       i.UserName,
		UserEmail:      i.UserEmail,
		JobDescription: i.JobDescription,
		Transcript:     i.Transcript,
		Feedback:       i.Feedback,
		CreatedAt:      i.CreatedAt,
		CompletedAt:    i.CompletedAt,
		Status:         i.Status,
		QuestionCount:  i.QuestionCount(),
	}
	if d := i.Duration(); d != nil {
		secs := d.Seconds()
		summary.DurationSecs = &secs
	}
	return summary
}

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}
