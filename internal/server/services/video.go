package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/logging"
	"github.com/clipforge/clipforge/internal/server/config"
	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/clipforge/clipforge/internal/server/repositories/repomanager"
	"github.com/clipforge/clipforge/internal/server/storage"
)

type VideoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.Storage
	logger      logging.Logger

	maxUploadSize int64
}

func NewVideoService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	store storage.Storage, logger logging.Logger) *VideoService {
	return &VideoService{
		db:            db,
		repomanager:   m,
		store:         store,
		logger:        logger,
		maxUploadSize: cfg.MaxUploadSizeMB * 1024 * 1024,
	}
}

type VideoUpload struct {
	ProjectID        int64
	OriginalFilename string
	Title            *string
	Description      *string
	ContentType      string
	Size             int64
	Body             io.Reader
}

// Upload validates and stores the file, then records it as UPLOADED. The
// project must belong to the uploading user.
func (s *VideoService) Upload(ctx context.Context, userID int64, up VideoUpload) (*models.Video, error) {

	if _, err := getOwnedProject(ctx, s.repomanager.Projects(s.db), userID, up.ProjectID); err != nil {
		return nil, err
	}

	mime, err := validateUpload(up.ContentType, up.Size, s.maxUploadSize, videoMimeTypes)
	if err != nil {
		return nil, err
	}

	key := storage.RandomKey("videos")

	if err := s.store.Save(ctx, key, up.Body, up.Size, mime); err != nil {
		return nil, fmt.Errorf("error storing video: %w", err)
	}

	video := &models.Video{
		Filename:         key,
		OriginalFilename: up.OriginalFilename,
		Title:            up.Title,
		Description:      up.Description,
		ProjectID:        up.ProjectID,
		UserID:           userID,
		FilePath:         key,
		FileSize:         up.Size,
		MimeType:         mime,
		Status:           models.FileStatusUploaded,
	}

	video, err = s.repomanager.Videos(s.db).Create(ctx, video)
	if err != nil {
		// storage and DB are not transactional; drop the orphan object
		if derr := s.store.Delete(ctx, key); derr != nil {
			s.logger.Warn(ctx, "failed to remove orphan object", "key", key, "error", derr)
		}
		return nil, fmt.Errorf("error creating video: %w", err)
	}

	return video, nil
}

func (s *VideoService) getOwned(ctx context.Context, userID, videoID int64) (*models.Video, error) {
	video, err := s.repomanager.Videos(s.db).GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.UserID != userID {
		return nil, common.ErrorForbidden
	}
	return video, nil
}

func (s *VideoService) Get(ctx context.Context, userID, videoID int64) (*models.Video, error) {
	return s.getOwned(ctx, userID, videoID)
}

func (s *VideoService) ListByProject(ctx context.Context, userID, projectID int64, limit, offset int) ([]*models.Video, error) {

	if _, err := getOwnedProject(ctx, s.repomanager.Projects(s.db), userID, projectID); err != nil {
		return nil, err
	}

	limit, offset = clampPage(limit, offset)
	return s.repomanager.Videos(s.db).ListByProject(ctx, projectID, limit, offset)
}

// DownloadURL returns a client-fetchable link for the stored file.
func (s *VideoService) DownloadURL(ctx context.Context, userID, videoID int64) (string, error) {

	video, err := s.getOwned(ctx, userID, videoID)
	if err != nil {
		return "", err
	}

	return s.store.URL(ctx, video.FilePath)
}

func (s *VideoService) Delete(ctx context.Context, userID, videoID int64) error {

	video, err := s.getOwned(ctx, userID, videoID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Videos(s.db).Delete(ctx, videoID); err != nil {
		return fmt.Errorf("error deleting video: %w", err)
	}

	if err := s.store.Delete(ctx, video.FilePath); err != nil {
		s.logger.Warn(ctx, "failed to remove stored object", "key", video.FilePath, "error", err)
	}

	return nil
}
