package cuttingplans

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

const planColumns = `id, name, description, cuts_data, export_settings,
	is_ai_generated, confidence_score, status, processing_progress, error_message,
	project_id, video_id, created_by_id, created_at, updated_at, approved_at, completed_at`

func scanPlan(scan func(dest ...any) error) (*models.CuttingPlan, error) {
	p := &models.CuttingPlan{}
	err := scan(&p.ID, &p.Name, &p.Description, &p.CutsData, &p.ExportSettings,
		&p.IsAIGenerated, &p.ConfidenceScore, &p.Status, &p.ProcessingProgress, &p.ErrorMessage,
		&p.ProjectID, &p.VideoID, &p.CreatedByID, &p.CreatedAt, &p.UpdatedAt, &p.ApprovedAt, &p.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, plan *models.CuttingPlan) (*models.CuttingPlan, error) {

	query :=
		`INSERT INTO cutting_plans (name, description, cuts_data, export_settings,
		     is_ai_generated, confidence_score, status, project_id, video_id, created_by_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		plan.Name, plan.Description, plan.CutsData, plan.ExportSettings,
		plan.IsAIGenerated, plan.ConfidenceScore, plan.Status,
		plan.ProjectID, plan.VideoID, plan.CreatedByID).Scan(&plan.ID, &plan.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return plan, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.CuttingPlan, error) {
	query := `SELECT ` + planColumns + ` FROM cutting_plans WHERE id = $1`
	return scanPlan(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *PostgresRepository) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*models.CuttingPlan, error) {
	query := `SELECT ` + planColumns + ` FROM cutting_plans
		 WHERE project_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.CuttingPlan
	for rows.Next() {
		p, err := scanPlan(rows.Scan)
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

func (r *PostgresRepository) Update(ctx context.Context, plan *models.CuttingPlan) error {
	query :=
		`UPDATE cutting_plans
		 SET name = $1, description = $2, cuts_data = $3, export_settings = $4,
		     status = $5, processing_progress = $6, error_message = $7,
		     approved_at = $8, completed_at = $9, updated_at = now()
		 WHERE id = $10`

	res, err := r.db.ExecContext(ctx, query,
		plan.Name, plan.Description, plan.CutsData, plan.ExportSettings,
		plan.Status, plan.ProcessingProgress, plan.ErrorMessage,
		plan.ApprovedAt, plan.CompletedAt, plan.ID)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM cutting_plans WHERE id = $1`, id)
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
