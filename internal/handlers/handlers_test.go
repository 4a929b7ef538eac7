package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"noorai/interview/internal/generation"
	"noorai/interview/internal/interview"
	"noorai/interview/internal/middleware"
	"noorai/interview/internal/models"
	"noorai/interview/internal/prompts"
	"noorai/interview/internal/store"
)

// scriptedProvider stands in for the LLM endpoint. generateFn may be swapped
// mid-test to simulate outages.
type scriptedProvider struct {
	generateFn func(ctx context.Context, prompt, requestID string) (string, error)
	calls      int
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, requestID string) (string, error) {
	p.calls++
	if p.generateFn != nil {
		return p.generateFn(ctx, prompt, requestID)
	}
	return fmt.Sprintf("Generated question %d?", p.calls), nil
}

func (p *scriptedProvider) GetProviderName() string { return "scripted" }

type testFixture struct {
	router   *chi.Mux
	engine   *interview.Engine
	provider *scriptedProvider
}

// newTestFixture wires the handlers onto a real engine backed by in-memory
// sqlite, with the same per-route validation middleware the server uses.
func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	interviewStore, err := store.NewGormStore(db)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}

	logger := zap.NewNop()
	provider := &scriptedProvider{}
	gateway := generation.NewGateway(provider, pm, logger)
	engine := interview.NewEngine(interviewStore, gateway, 5, logger)

	interviewHandler := NewInterviewHandler(engine, logger)
	uploadHandler := NewUploadHandler(engine, logger)

	router := chi.NewRouter()
	router.Post("/api/v1/upload", uploadHandler.Upload)
	router.Route("/api/v1/interview", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.StartInterviewRequest]()).
			Post("/start", interviewHandler.StartHandler)
		r.With(middleware.ValidateRequest[*models.RespondRequest]()).
			Post("/respond", interviewHandler.RespondHandler)
		r.With(middleware.ValidateRequest[*models.EndInterviewRequest]()).
			Post("/end", interviewHandler.EndHandler)
		r.With(middleware.ValidateRequest[*models.UpdateJobDescriptionRequest]()).
			Put("/job-description", interviewHandler.UpdateJobDescriptionHandler)
		r.Get("/summaries", interviewHandler.SummariesHandler)
		r.Get("/{id}/full", interviewHandler.FullDetailsHandler)
	})

	return &testFixture{router: router, engine: engine, provider: provider}
}

func startedInterviewID(t *testing.T, f *testFixture) uint {
	t.Helper()
	resp, err := f.engine.Start(context.Background(), "Go developer resume.", "Backend role.")
	if err != nil {
		t.Fatalf("failed to seed interview: %v", err)
	}
	return resp.ID
}

// decodeError reads an ErrorResponse body, failing the test on garbage.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var errResp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed decoding error body %q: %v", rec.Body.String(), err)
	}
	return errResp
}

func doJSON(t *testing.T, f *testFixture, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}
