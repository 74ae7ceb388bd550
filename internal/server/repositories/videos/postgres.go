package videos

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

const videoColumns = `id, filename, original_filename, title, description,
	project_id, user_id, file_path, file_size, mime_type,
	duration, width, height, fps, codec, bitrate, status,
	analysis_data, scene_cuts, processing_time, error_message,
	created_at, updated_at, analyzed_at`

func scanVideo(scan func(dest ...any) error) (*models.Video, error) {
	v := &models.Video{}
	err := scan(&v.ID, &v.Filename, &v.OriginalFilename, &v.Title, &v.Description,
		&v.ProjectID, &v.UserID, &v.FilePath, &v.FileSize, &v.MimeType,
		&v.Duration, &v.Width, &v.Height, &v.FPS, &v.Codec, &v.Bitrate, &v.Status,
		&v.AnalysisData, &v.SceneCuts, &v.ProcessingTime, &v.ErrorMessage,
		&v.CreatedAt, &v.UpdatedAt, &v.AnalyzedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) Create(ctx context.Context, video *models.Video) (*models.Video, error) {

	query :=
		`INSERT INTO videos (filename, original_filename, title, description, project_id, user_id,
		     file_path, file_size, mime_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		video.Filename, video.OriginalFilename, video.Title, video.Description,
		video.ProjectID, video.UserID, video.FilePath, video.FileSize,
		video.MimeType, video.Status).Scan(&video.ID, &video.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return video, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	return scanVideo(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *PostgresRepository) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos
		 WHERE project_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Video
	for rows.Next() {
		v, err := scanVideo(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status models.FileStatus, errorMessage *string) error {
	query := `UPDATE videos SET status = $1, error_message = $2, updated_at = now() WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, status, errorMessage, id)
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

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
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
