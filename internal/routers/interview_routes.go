package routers

import (
	"noorai/interview/internal/handlers"
	"noorai/interview/internal/middleware"
	"noorai/interview/internal/models"

	"github.com/go-chi/chi/v5"
)

func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, uploadHandler *handlers.UploadHandler) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/upload", uploadHandler.Upload)

		r.Route("/interview", func(r chi.Router) {
			r.With(middleware.ValidateRequest[*models.StartInterviewRequest]()).Post("/start", interviewHandler.StartHandler)
			r.With(middleware.ValidateRequest[*models.RespondRequest]()).Post("/respond", interviewHandler.RespondHandler)
			r.With(middleware.ValidateRequest[*models.EndInterviewRequest]()).Post("/end", interviewHandler.EndHandler)
			r.With(middleware.ValidateRequest[*models.UpdateJobDescriptionRequest]()).Put("/job-description", interviewHandler.UpdateJobDescriptionHandler)
			r.Get("/summaries", interviewHandler.SummariesHandler)
			r.Get("/{id}/full", interviewHandler.FullDetailsHandler)
		})
	})
}
