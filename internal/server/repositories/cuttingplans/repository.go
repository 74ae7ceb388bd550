package cuttingplans

import (
	"context"

	"github.com/clipforge/clipforge/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, plan *models.CuttingPlan) (*models.CuttingPlan, error)
	GetByID(ctx context.Context, id int64) (*models.CuttingPlan, error)
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*models.CuttingPlan, error)
	Update(ctx context.Context, plan *models.CuttingPlan) error
	Delete(ctx context.Context, id int64) error
}
