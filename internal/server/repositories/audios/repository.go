package audios

import (
	"context"

	"github.com/clipforge/clipforge/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, audio *models.Audio) (*models.Audio, error)
	GetByID(ctx context.Context, id int64) (*models.Audio, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Audio, error)
	UpdateStatus(ctx context.Context, id int64, status models.FileStatus, errorMessage *string) error
	Delete(ctx context.Context, id int64) error
}
