package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"noorai/interview/internal/models"
)

var (
	// ErrInterviewNotFound marks an unknown interview id.
	ErrInterviewNotFound = errors.New("interview not found")

	// ErrVersionConflict means another writer saved the interview between
	// this caller's read and its save. The caller should re-read and retry
	// or surface a conflict.
	ErrVersionConflict = errors.New("interview was modified concurrently")
)

// InterviewStore is the narrow persistence contract the engine depends on.
type InterviewStore interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id uint) (*models.Interview, error)
	Save(ctx context.Context, interview *models.Interview) error
	List(ctx context.Context) ([]models.Interview, error)
}

// GormStore backs InterviewStore with a relational database: postgres in
// deployments, sqlite in tests.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Interview{}); err != nil {
		return nil, fmt.Errorf("failed to migrate interview schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Create(ctx context.Context, interview *models.Interview) error {
	if err := s.db.WithContext(ctx).Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (s *GormStore) GetByID(ctx context.Context, id uint) (*models.Interview, error) {
	var interview models.Interview
	err := s.db.WithContext(ctx).First(&interview, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load interview %d: %w", id, err)
	}
	return &interview, nil
}

// Save overwrites all mutable fields. The row's version must still match the
// version the caller read; on a mismatch nothing is written and
// ErrVersionConflict is returned.
func (s *GormStore) Save(ctx context.Context, interview *models.Interview) error {
	readVersion := interview.Version
	interview.Version = readVersion + 1

	result := s.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ? AND version = ?", interview.ID, readVersion).
		Updates(map[string]interface{}{
			"user_name":       interview.UserName,
			"user_email":      interview.UserEmail,
			"resume_content":  interview.ResumeContent,
			"job_description": interview.JobDescription,
			"transcript":      interview.Transcript,
			"feedback":        interview.Feedback,
			"status":          interview.Status,
			"completed_at":    interview.CompletedAt,
			"version":         interview.Version,
		})
	if result.Error != nil {
		interview.Version = readVersion
		return fmt.Errorf("failed to save interview %d: %w", interview.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		interview.Version = readVersion
		return ErrVersionConflict
	}
	return nil
}

// ListCompletedSince returns interviews completed at or after the given
// time, oldest first. Used by the report exporter.
func (s *GormStore) ListCompletedSince(ctx context.Context, since time.Time) ([]models.Interview, error) {
	var interviews []models.Interview
	err := s.db.WithContext(ctx).
		Where("status = ? AND completed_at >= ?", models.StatusCompleted, since).
		Order("completed_at ASC").
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list completed interviews: %w", err)
	}
	return interviews, nil
}

func (s *GormStore) List(ctx context.Context) ([]models.Interview, error) {
	var interviews []models.Interview
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}
