package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"noorai/interview/internal/interview"
	"noorai/interview/internal/llm"
	"noorai/interview/internal/middleware"
	"noorai/interview/internal/models"
	"noorai/interview/internal/store"
	"noorai/interview/internal/utils"
)

type InterviewHandler struct {
	engine *interview.Engine
	logger *zap.Logger
}

func NewInterviewHandler(engine *interview.Engine, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		engine: engine,
		logger: logger,
	}
}

// StartHandler handles POST /api/v1/interview/start: plain-text resume and
// job description, no file upload involved.
func (h *InterviewHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartInterviewRequest](r)

	response, err := h.engine.Start(r.Context(), req.ResumeContent, req.JobDescription)
	if err != nil {
		h.writeEngineError(w, err, "failed to start interview")
		return
	}

	utils.JSON(w, http.StatusCreated, response)
}

// RespondHandler handles POST /api/v1/interview/respond: records the
// candidate's answer and returns the next question, or the closing message
// plus feedback once the question cap is reached.
func (h *InterviewHandler) RespondHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RespondRequest](r)

	response, err := h.engine.NextQuestion(r.Context(), req.InterviewID, req.Answer)
	if err != nil {
		h.writeEngineError(w, err, "failed to advance interview")
		return
	}

	utils.JSON(w, http.StatusOK, response)
}

// EndHandler handles POST /api/v1/interview/end.
func (h *InterviewHandler) EndHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.EndInterviewRequest](r)

	response, err := h.engine.End(r.Context(), req.InterviewID)
	if err != nil {
		h.writeEngineError(w, err, "failed to end interview")
		return
	}

	utils.JSON(w, http.StatusOK, response)
}

// UpdateJobDescriptionHandler handles PUT /api/v1/interview/job-description.
func (h *InterviewHandler) UpdateJobDescriptionHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateJobDescriptionRequest](r)

	summary, err := h.engine.UpdateJobDescription(r.Context(), req.InterviewID, req.JobDescription)
	if err != nil {
		h.writeEngineError(w, err, "failed to update job description")
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}

// SummariesHandler handles GET /api/v1/interview/summaries.
func (h *InterviewHandler) SummariesHandler(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.engine.Summaries(r.Context())
	if err != nil {
		h.writeEngineError(w, err, "failed to list interviews")
		return
	}

	utils.JSON(w, http.StatusOK, summaries)
}

// FullDetailsHandler handles GET /api/v1/interview/{id}/full.
func (h *InterviewHandler) FullDetailsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_id",
			Message: "Interview id must be a positive integer",
		})
		return
	}

	summary, err := h.engine.Summary(r.Context(), uint(id))
	if err != nil {
		h.writeEngineError(w, err, "failed to load interview")
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}

func (h *InterviewHandler) writeEngineError(w http.ResponseWriter, err error, logMsg string) {
	writeEngineError(w, h.logger, err, logMsg)
}

// writeEngineError maps engine errors onto HTTP responses. Every error kind
// stays distinct at the boundary; nothing is collapsed into a generic 500
// unless it really is unknown.
func writeEngineError(w http.ResponseWriter, logger *zap.Logger, err error, logMsg string) {
	switch {
	case errors.Is(err, store.ErrInterviewNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "interview_not_found",
			Message: "Interview not found",
		})
	case errors.Is(err, interview.ErrAlreadyCompleted):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "interview_completed",
			Message: "Interview is already completed",
		})
	case errors.Is(err, interview.ErrValidation):
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, store.ErrVersionConflict):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "conflict",
			Message: "Interview was modified by another request, please retry",
		})
	case errors.Is(err, llm.ErrGenerationUnavailable):
		logger.Error(logMsg, zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "generation_unavailable",
			Message: "The interview generator is currently unavailable, please try again",
		})
	default:
		logger.Error(logMsg, zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "An unexpected error occurred",
		})
	}
}
