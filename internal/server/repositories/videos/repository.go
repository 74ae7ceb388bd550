package videos

import (
	"context"

	"github.com/clipforge/clipforge/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, video *models.Video) (*models.Video, error)
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*models.Video, error)
	UpdateStatus(ctx context.Context, id int64, status models.FileStatus, errorMessage *string) error
	Delete(ctx context.Context, id int64) error
}
