package models

import (
	"strings"
)

// StartInterviewRequest starts a session from already-extracted text.
type StartInterviewRequest struct {
	ResumeContent  string `json:"resume_content"`
	JobDescription string `json:"job_description"`
	RequestID      string `json:"request_id"`
}

// implements the Validator interface
func (r *StartInterviewRequest) Validate() error {
	if strings.TrimSpace(r.ResumeContent) == "" {
		return &ErrorResponse{
			Code:    "missing_resume",
			Message: "Resume content is required",
		}
	}
	if strings.TrimSpace(r.JobDescription) == "" {
		return &ErrorResponse{
			Code:    "missing_job_description",
			Message: "Job description is required",
		}
	}
	return nil
}

// RespondRequest advances an interview by one exchange. Answer carries the
// candidate's reply to the previous question; it may be empty on the very
// first advance.
type RespondRequest struct {
	InterviewID uint   `json:"interview_id"`
	Answer      string `json:"answer"`
	RequestID   string `json:"request_id"`
}

func (r *RespondRequest) Validate() error {
	if r.InterviewID == 0 {
		return &ErrorResponse{Code: "missing_interview_id", Message: "interview_id is required"}
	}
	return nil
}

type EndInterviewRequest struct {
	InterviewID uint   `json:"interview_id"`
	RequestID   string `json:"request_id"`
}

func (r *EndInterviewRequest) Validate() error {
	if r.InterviewID == 0 {
		return &ErrorResponse{Code: "missing_interview_id", Message: "interview_id is required"}
	}
	return nil
}

type UpdateJobDescriptionRequest struct {
	InterviewID    uint   `json:"interview_id"`
	JobDescription string `json:"job_description"`
}

func (r *UpdateJobDescriptionRequest) Validate() error {
	if r.InterviewID == 0 {
		return &ErrorResponse{Code: "missing_interview_id", Message: "interview_id is required"}
	}
	if strings.TrimSpace(r.JobDescription) == "" {
		return &ErrorResponse{Code: "missing_job_description", Message: "job_description must not be empty"}
	}
	return nil
}
