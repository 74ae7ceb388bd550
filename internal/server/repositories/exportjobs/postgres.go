package exportjobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/dbx"
	"github.com/clipforge/clipforge/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const jobColumns = `id, output_format, resolution, quality, fps, bitrate,
	output_filename, output_path, output_size, download_url,
	status, progress, current_step, error_message, retry_count, max_retries,
	cutting_plan_id, created_at, started_at, completed_at, expires_at`

func scanJob(scan func(dest ...any) error) (*models.ExportJob, error) {
	j := &models.ExportJob{}
	err := scan(&j.ID, &j.OutputFormat, &j.Resolution, &j.Quality, &j.FPS, &j.Bitrate,
		&j.OutputFilename, &j.OutputPath, &j.OutputSize, &j.DownloadURL,
		&j.Status, &j.Progress, &j.CurrentStep, &j.ErrorMessage, &j.RetryCount, &j.MaxRetries,
		&j.CuttingPlanID, &j.CreatedAt, &j.StartedAt, &j.CompletedAt, &j.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (r *PostgresRepository) Create(ctx context.Context, job *models.ExportJob) (*models.ExportJob, error) {

	query :=
		`INSERT INTO export_jobs (output_format, resolution, quality, fps, bitrate,
		     status, max_retries, cutting_plan_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		job.OutputFormat, job.Resolution, job.Quality, job.FPS, job.Bitrate,
		job.Status, job.MaxRetries, job.CuttingPlanID).Scan(&job.ID, &job.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return job, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.ExportJob, error) {
	query := `SELECT ` + jobColumns + ` FROM export_jobs WHERE id = $1`
	return scanJob(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *PostgresRepository) ListByCuttingPlan(ctx context.Context, planID int64, limit, offset int) ([]*models.ExportJob, error) {
	query := `SELECT ` + jobColumns + ` FROM export_jobs
		 WHERE cutting_plan_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, planID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ExportJob
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, job *models.ExportJob) error {
	query :=
		`UPDATE export_jobs
		 SET output_filename = $1, output_path = $2, output_size = $3, download_url = $4,
		     status = $5, progress = $6, current_step = $7, error_message = $8,
		     retry_count = $9, started_at = $10, completed_at = $11, expires_at = $12
		 WHERE id = $13`

	res, err := r.db.ExecContext(ctx, query,
		job.OutputFilename, job.OutputPath, job.OutputSize, job.DownloadURL,
		job.Status, job.Progress, job.CurrentStep, job.ErrorMessage,
		job.RetryCount, job.StartedAt, job.CompletedAt, job.ExpiresAt, job.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) NextQueued(ctx context.Context) (*models.ExportJob, error) {
	// SKIP LOCKED lets several workers poll the queue without contending.
	query :=
		`UPDATE export_jobs
		 SET status = 'processing', started_at = now()
		 WHERE id = (
		     SELECT id FROM export_jobs
		     WHERE status = 'queued'
		     ORDER BY created_at
		     FOR UPDATE SKIP LOCKED
		     LIMIT 1
		 )
		 RETURNING ` + jobColumns

	return scanJob(r.db.QueryRowContext(ctx, query).Scan)
}
