package models

import (
	"time"
)

// InterviewStatus is the lifecycle state of an interview session.
type InterviewStatus string

const (
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
)

// Interview is the central entity: one mock interview from upload to completion.
// ResumeContent and JobDescription hold plain extracted text used for
// prompting; the original uploaded bytes are kept separately for audit so
// extraction runs exactly once.
type Interview struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`

	ResumeContent  string `gorm:"type:text;not null" json:"resume_content"`
	JobDescription string `gorm:"type:text;not null" json:"job_description"`

	ResumeRaw         []byte `gorm:"type:bytea" json:"-"`
	JobDescriptionRaw []byte `gorm:"type:bytea" json:"-"`

	// Transcript is the serialized append-only log. Use ParseTranscript to
	// work with it as entries; never rewrite existing lines.
	Transcript string `gorm:"type:text;not null" json:"transcript"`

	Feedback *string `gorm:"type:text" json:"feedback,omitempty"`

	Status      InterviewStatus `gorm:"not null;default:in_progress;index" json:"status"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`

	// Version is compared on save; a mismatch means a concurrent writer got
	// there first and the save is rejected.
	Version int `gorm:"not null;default:0" json:"-"`
}

// Completed reports whether the session has reached its terminal state.
func (i *Interview) Completed() bool {
	return i.Status == StatusCompleted
}

// Entries returns the transcript as an ordered entry sequence.
func (i *Interview) Entries() Transcript {
	return ParseTranscript(i.Transcript)
}

// QuestionCount recomputes the number of questions asked from the transcript.
// It is never stored redundantly.
func (i *Interview) QuestionCount() int {
	return i.Entries().QuestionCount()
}

// Duration is CompletedAt - CreatedAt for completed sessions, nil otherwise.
func (i *Interview) Duration() *time.Duration {
	if i.CompletedAt == nil {
		return nil
	}
	d := i.CompletedAt.Sub(i.CreatedAt)
	return &d
}

// Complete records feedback and transitions the session to its terminal
// state. Status, feedback and the completion timestamp change together so the
// three are never observed out of sync.
func (i *Interview) Complete(feedback string, at time.Time) {
	i.Feedback = &feedback
	i.Status = StatusCompleted
	i.CompletedAt = &at
}
