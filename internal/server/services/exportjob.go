package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/server/config"
	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/clipforge/clipforge/internal/server/repositories/repomanager"
)

type ExportJobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager

	defaultMaxRetries int
}

func NewExportJobService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ExportJobService {
	return &ExportJobService{db: db, repomanager: m, defaultMaxRetries: 3}
}

// ownedPlan resolves the job's cutting plan and checks the caller created it.
// Export jobs carry no user id of their own.
func (s *ExportJobService) ownedPlan(ctx context.Context, userID, planID int64) (*models.CuttingPlan, error) {
	plan, err := s.repomanager.CuttingPlans(s.db).GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.CreatedByID != userID {
		return nil, common.ErrorForbidden
	}
	return plan, nil
}

type ExportJobCreate struct {
	CuttingPlanID int64
	OutputFormat  models.ExportFormat
	Resolution    string
	Quality       models.ExportQuality
	FPS           *float64
	Bitrate       *int64
}

func (s *ExportJobService) Create(ctx context.Context, userID int64, in ExportJobCreate) (*models.ExportJob, error) {

	plan, err := s.ownedPlan(ctx, userID, in.CuttingPlanID)
	if err != nil {
		return nil, err
	}

	if plan.Status != models.CuttingPlanStatusApproved {
		return nil, fmt.Errorf("%w: plan must be approved before export", common.ErrorInvalidArgument)
	}

	if in.OutputFormat == "" {
		in.OutputFormat = models.ExportFormatMP4
	}
	if in.Resolution == "" {
		in.Resolution = "1920x1080"
	}
	if in.Quality == "" {
		in.Quality = models.ExportQualityHigh
	}

	job := &models.ExportJob{
		OutputFormat:  in.OutputFormat,
		Resolution:    in.Resolution,
		Quality:       in.Quality,
		FPS:           in.FPS,
		Bitrate:       in.Bitrate,
		Status:        models.ExportStatusQueued,
		MaxRetries:    s.defaultMaxRetries,
		CuttingPlanID: in.CuttingPlanID,
	}

	job, err = s.repomanager.ExportJobs(s.db).Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("error creating export job: %w", err)
	}

	return job, nil
}

func (s *ExportJobService) getOwned(ctx context.Context, userID, jobID int64) (*models.ExportJob, error) {
	job, err := s.repomanager.ExportJobs(s.db).GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedPlan(ctx, userID, job.CuttingPlanID); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *ExportJobService) Get(ctx context.Context, userID, jobID int64) (*models.ExportJob, error) {
	return s.getOwned(ctx, userID, jobID)
}

func (s *ExportJobService) ListByCuttingPlan(ctx context.Context, userID, planID int64, limit, offset int) ([]*models.ExportJob, error) {

	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return nil, err
	}

	limit, offset = clampPage(limit, offset)
	return s.repomanager.ExportJobs(s.db).ListByCuttingPlan(ctx, planID, limit, offset)
}

// Cancel stops a job that has not finished yet.
func (s *ExportJobService) Cancel(ctx context.Context, userID, jobID int64) (*models.ExportJob, error) {

	job, err := s.getOwned(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	switch job.Status {
	case models.ExportStatusQueued, models.ExportStatusProcessing:
	default:
		return nil, fmt.Errorf("%w: job is %s", common.ErrorInvalidArgument, job.Status)
	}

	now := nowUTC()
	job.Status = models.ExportStatusCancelled
	job.CompletedAt = &now

	if err := s.repomanager.ExportJobs(s.db).Update(ctx, job); err != nil {
		return nil, fmt.Errorf("error cancelling export job: %w", err)
	}

	return job, nil
}

// Retry requeues a failed job while it still has retry budget.
func (s *ExportJobService) Retry(ctx context.Context, userID, jobID int64) (*models.ExportJob, error) {

	job, err := s.getOwned(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if !job.CanRetry() {
		return nil, fmt.Errorf("%w: job cannot be retried", common.ErrorInvalidArgument)
	}

	job.Status = models.ExportStatusQueued
	job.RetryCount++
	job.Progress = 0
	job.ErrorMessage = nil
	job.StartedAt = nil
	job.CompletedAt = nil

	if err := s.repomanager.ExportJobs(s.db).Update(ctx, job); err != nil {
		return nil, fmt.Errorf("error requeueing export job: %w", err)
	}

	return job, nil
}
