package projects

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

const projectColumns = `id, name, description, user_id, project_type, status,
	timeline_data, total_duration, processing_progress, created_at, updated_at, completed_at`

func scanProject(scan func(dest ...any) error) (*models.Project, error) {
	p := &models.Project{}
	err := scan(&p.ID, &p.Name, &p.Description, &p.UserID, &p.ProjectType, &p.Status,
		&p.TimelineData, &p.TotalDuration, &p.ProcessingProgress, &p.CreatedAt, &p.UpdatedAt, &p.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {

	query :=
		`INSERT INTO projects (name, description, user_id, project_type, status, timeline_data)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		project.Name, project.Description, project.UserID, project.ProjectType,
		project.Status, project.TimelineData).Scan(&project.ID, &project.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return project, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, project *models.Project) error {
	query :=
		`UPDATE projects
		 SET name = $1, description = $2, project_type = $3, status = $4,
		     timeline_data = $5, total_duration = $6, processing_progress = $7,
		     completed_at = $8, updated_at = now()
		 WHERE id = $9`

	res, err := r.db.ExecContext(ctx, query,
		project.Name, project.Description, project.ProjectType, project.Status,
		project.TimelineData, project.TotalDuration, project.ProcessingProgress,
		project.CompletedAt, project.ID)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
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
