package exportjobs

import (
	"context"

	"github.com/clipforge/clipforge/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, job *models.ExportJob) (*models.ExportJob, error)
	GetByID(ctx context.Context, id int64) (*models.ExportJob, error)
	ListByCuttingPlan(ctx context.Context, planID int64, limit, offset int) ([]*models.ExportJob, error)
	Update(ctx context.Context, job *models.ExportJob) error
	// NextQueued claims the oldest queued job, marking it processing.
	NextQueued(ctx context.Context) (*models.ExportJob, error)
}
