package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"noorai/interview/internal/interview"
	"noorai/interview/internal/models"
	"noorai/interview/internal/utils"
)

// maxUploadBytes caps the whole multipart body.
const maxUploadBytes = 10 << 20 // 10 MB

type UploadHandler struct {
	engine *interview.Engine
	logger *zap.Logger
}

func NewUploadHandler(engine *interview.Engine, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		engine: engine,
		logger: logger,
	}
}

// UploadHandler handles POST /api/v1/upload: multipart form with "resume"
// and "job_description" PDF files. A successful upload creates the interview
// and returns its opening transcript with the first question.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_upload",
			Message: "Could not parse multipart upload (limit 10 MB)",
		})
		return
	}

	resumeBytes, ok := h.readPDFField(w, r, "resume")
	if !ok {
		return
	}
	jobDescriptionBytes, ok := h.readPDFField(w, r, "job_description")
	if !ok {
		return
	}

	response, err := h.engine.StartFromUpload(r.Context(), resumeBytes, jobDescriptionBytes)
	if err != nil {
		writeEngineError(w, h.logger, err, "failed to start interview from upload")
		return
	}

	utils.JSON(w, http.StatusCreated, response)
}

// readPDFField fetches one file field, enforcing the PDF content type. On
// failure it writes the error response and returns ok=false.
func (h *UploadHandler) readPDFField(w http.ResponseWriter, r *http.Request, field string) ([]byte, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_" + field,
			Message: "The " + field + " file is required",
		})
		return nil, false
	}
	defer file.Close()

	if !isPDF(header) {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_content_type",
			Message: "Both files must be in PDF format",
		})
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded file", zap.String("field", field), zap.Error(err))
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_upload",
			Message: "Could not read the uploaded " + field + " file",
		})
		return nil, false
	}

	return data, true
}

func isPDF(header *multipart.FileHeader) bool {
	return strings.EqualFold(header.Header.Get("Content-Type"), "application/pdf")
}
