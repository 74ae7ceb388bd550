package audios

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

const audioColumns = `id, filename, original_filename, title, description,
	project_id, user_id, file_path, file_size, mime_type,
	duration, codec, bitrate, sample_rate, channels, status,
	analysis_data, transcription, processing_time, error_message,
	created_at, updated_at, analyzed_at`

func scanAudio(scan func(dest ...any) error) (*models.Audio, error) {
	a := &models.Audio{}
	err := scan(&a.ID, &a.Filename, &a.OriginalFilename, &a.Title, &a.Description,
		&a.ProjectID, &a.UserID, &a.FilePath, &a.FileSize, &a.MimeType,
		&a.Duration, &a.Codec, &a.Bitrate, &a.SampleRate, &a.Channels, &a.Status,
		&a.AnalysisData, &a.Transcription, &a.ProcessingTime, &a.ErrorMessage,
		&a.CreatedAt, &a.UpdatedAt, &a.AnalyzedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, audio *models.Audio) (*models.Audio, error) {

	query :=
		`INSERT INTO audios (filename, original_filename, title, description, project_id, user_id,
		     file_path, file_size, mime_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		audio.Filename, audio.OriginalFilename, audio.Title, audio.Description,
		audio.ProjectID, audio.UserID, audio.FilePath, audio.FileSize,
		audio.MimeType, audio.Status).Scan(&audio.ID, &audio.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return audio, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Audio, error) {
	query := `SELECT ` + audioColumns + ` FROM audios WHERE id = $1`
	return scanAudio(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Audio, error) {
	query := `SELECT ` + audioColumns + ` FROM audios
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Audio
	for rows.Next() {
		a, err := scanAudio(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status models.FileStatus, errorMessage *string) error {
	query := `UPDATE audios SET status = $1, error_message = $2, updated_at = now() WHERE id = $3`

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
	res, err := r.db.ExecContext(ctx, `DELETE FROM audios WHERE id = $1`, id)
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
