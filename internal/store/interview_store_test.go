package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"noorai/interview/internal/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	s, err := NewGormStore(db)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func seedInterview(t *testing.T, s *GormStore, createdAt time.Time) *models.Interview {
	t.Helper()
	interview := &models.Interview{
		ResumeContent:  "resume",
		JobDescription: "job",
		Transcript:     "System: Interview started.",
		Status:         models.StatusInProgress,
		CreatedAt:      createdAt,
	}
	if err := s.Create(context.Background(), interview); err != nil {
		t.Fatalf("failed seeding interview: %v", err)
	}
	return interview
}

func TestCreateAssignsID(t *testing.T) {
	s := newTestStore(t)
	interview := seedInterview(t, s, time.Now())
	if interview.ID == 0 {
		t.Fatalf("expected store to assign an id")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetByID(context.Background(), 9999); !errors.Is(err, ErrInterviewNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestSavePersistsMutableFields(t *testing.T) {
	s := newTestStore(t)
	interview := seedInterview(t, s, time.Now())

	interview.Transcript += "\nAI: First question?"
	feedback := "well done"
	interview.Complete(feedback, time.Now())
	if err := s.Save(context.Background(), interview); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	reloaded, err := s.GetByID(context.Background(), interview.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if reloaded.Status != models.StatusCompleted || reloaded.Feedback == nil || reloaded.CompletedAt == nil {
		t.Fatalf("terminal fields not persisted together: %+v", reloaded)
	}
	if reloaded.QuestionCount() != 1 {
		t.Fatalf("expected transcript persisted, got %q", reloaded.Transcript)
	}
}

func TestSaveDetectsConcurrentWriter(t *testing.T) {
	s := newTestStore(t)
	seeded := seedInterview(t, s, time.Now())

	first, err := s.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	second, err := s.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}

	first.Transcript += "\nAI: From writer one?"
	if err := s.Save(context.Background(), first); err != nil {
		t.Fatalf("first save should win: %v", err)
	}

	second.Transcript += "\nAI: From writer two?"
	if err := s.Save(context.Background(), second); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	// The losing write must not have clobbered the winner.
	reloaded, err := s.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if reloaded.Transcript != first.Transcript {
		t.Fatalf("conflicting save leaked into storage: %q", reloaded.Transcript)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	s := newTestStore(t)
	older := seedInterview(t, s, time.Now().Add(-time.Hour))
	newer := seedInterview(t, s, time.Now())

	interviews, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(interviews) != 2 {
		t.Fatalf("expected 2 interviews, got %d", len(interviews))
	}
	if interviews[0].ID != newer.ID || interviews[1].ID != older.ID {
		t.Fatalf("expected newest first, got ids %d, %d", interviews[0].ID, interviews[1].ID)
	}
}

func TestListCompletedSince(t *testing.T) {
	s := newTestStore(t)

	longAgo := seedInterview(t, s, time.Now().Add(-72*time.Hour))
	longAgoDone := time.Now().Add(-48 * time.Hour)
	longAgo.Complete("old feedback", longAgoDone)
	if err := s.Save(context.Background(), longAgo); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	recent := seedInterview(t, s, time.Now().Add(-time.Hour))
	recent.Complete("new feedback", time.Now())
	if err := s.Save(context.Background(), recent); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	seedInterview(t, s, time.Now()) // still in progress

	completed, err := s.ListCompletedSince(context.Background(), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("ListCompletedSince error: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != recent.ID {
		t.Fatalf("expected only the recently completed interview, got %+v", completed)
	}
}
