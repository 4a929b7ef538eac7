package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"noorai/interview/internal/models"
)

// ReportSource is the slice of the store the exporter needs.
type ReportSource interface {
	ListCompletedSince(ctx context.Context, since time.Time) ([]models.Interview, error)
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule  string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir string
	Enabled   bool
}

// ReportExporterJob periodically writes completed-interview feedback reports
// to JSONL files for offline review. It never touches in-progress sessions
// and plays no part in completing them.
type ReportExporterJob struct {
	source     ReportSource
	config     *ExporterConfig
	logger     *zap.Logger
	cron       *cron.Cron
	lastExport time.Time
}

// reportLine is one exported interview in JSONL form.
type reportLine struct {
	InterviewID   uint       `json:"interview_id"`
	UserName      string     `json:"user_name"`
	UserEmail     string     `json:"user_email"`
	QuestionCount int        `json:"question_count"`
	Feedback      string     `json:"feedback"`
	Transcript    string     `json:"transcript"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

func NewReportExporterJob(source ReportSource, config *ExporterConfig, logger *zap.Logger) *ReportExporterJob {
	return &ReportExporterJob{
		source:     source,
		config:     config,
		logger:     logger,
		lastExport: time.Now().AddDate(0, 0, -1),
	}
}

// Start schedules the export job.
func (j *ReportExporterJob) Start() error {
	j.cron = cron.New()

	if _, err := j.cron.AddFunc(j.config.Schedule, func() {
		if err := j.RunOnce(context.Background()); err != nil {
			j.logger.Error("report export failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule report exporter: %w", err)
	}

	j.cron.Start()
	return nil
}

// Stop halts the schedule; a run already in flight finishes.
func (j *ReportExporterJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// RunOnce exports everything completed since the previous run.
func (j *ReportExporterJob) RunOnce(ctx context.Context) error {
	since := j.lastExport
	runStarted := time.Now()

	interviews, err := j.source.ListCompletedSince(ctx, since)
	if err != nil {
		return err
	}
	if len(interviews) == 0 {
		j.logger.Info("no completed interviews to export", zap.Time("since", since))
		j.lastExport = runStarted
		return nil
	}

	data, err := j.toJSONL(interviews)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(j.config.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := filepath.Join(j.config.ExportDir,
		fmt.Sprintf("interview_reports_%s.jsonl", runStarted.UTC().Format("20060102T150405Z")))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	j.lastExport = runStarted
	j.logger.Info("exported interview reports",
		zap.Int("count", len(interviews)),
		zap.String("file", filename))

	return nil
}

func (j *ReportExporterJob) toJSONL(interviews []models.Interview) ([]byte, error) {
	var out []byte
	for i := range interviews {
		iv := &interviews[i]
		feedback := ""
		if iv.Feedback != nil {
			feedback = *iv.Feedback
		}
		line, err := json.Marshal(reportLine{
			InterviewID:   iv.ID,
			UserName:      iv.UserName,
			UserEmail:     iv.UserEmail,
			QuestionCount: iv.QuestionCount(),
			Feedback:      feedback,
			Transcript:    iv.Transcript,
			CreatedAt:     iv.CreatedAt,
			CompletedAt:   iv.CompletedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report line: %w", err)
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out, nil
}
