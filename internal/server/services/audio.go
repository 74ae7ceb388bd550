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

type AudioService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.Storage
	logger      logging.Logger

	maxUploadSize int64
}

func NewAudioService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config,
	store storage.Storage, logger logging.Logger) *AudioService {
	return &AudioService{
		db:            db,
		repomanager:   m,
		store:         store,
		logger:        logger,
		maxUploadSize: cfg.MaxUploadSizeMB * 1024 * 1024,
	}
}

type AudioUpload struct {
	// ProjectID is optional; library tracks are not tied to a project.
	ProjectID        *int64
	OriginalFilename string
	Title            *string
	Description      *string
	ContentType      string
	Size             int64
	Body             io.Reader
}

func (s *AudioService) Upload(ctx context.Context, userID int64, up AudioUpload) (*models.Audio, error) {

	if up.ProjectID != nil {
		if _, err := getOwnedProject(ctx, s.repomanager.Projects(s.db), userID, *up.ProjectID); err != nil {
			return nil, err
		}
	}

	mime, err := validateUpload(up.ContentType, up.Size, s.maxUploadSize, audioMimeTypes)
	if err != nil {
		return nil, err
	}

	key := storage.RandomKey("audios")

	if err := s.store.Save(ctx, key, up.Body, up.Size, mime); err != nil {
		return nil, fmt.Errorf("error storing audio: %w", err)
	}

	audio := &models.Audio{
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

	audio, err = s.repomanager.Audios(s.db).Create(ctx, audio)
	if err != nil {
		if derr := s.store.Delete(ctx, key); derr != nil {
			s.logger.Warn(ctx, "failed to remove orphan object", "key", key, "error", derr)
		}
		return nil, fmt.Errorf("error creating audio: %w", err)
	}

	return audio, nil
}

func (s *AudioService) getOwned(ctx context.Context, userID, audioID int64) (*models.Audio, error) {
	audio, err := s.repomanager.Audios(s.db).GetByID(ctx, audioID)
	if err != nil {
		return nil, err
	}
	if audio.UserID != userID {
		return nil, common.ErrorForbidden
	}
	return audio, nil
}

func (s *AudioService) Get(ctx context.Context, userID, audioID int64) (*models.Audio, error) {
	return s.getOwned(ctx, userID, audioID)
}

func (s *AudioService) List(ctx context.Context, userID int64, limit, offset int) ([]*models.Audio, error) {
	limit, offset = clampPage(limit, offset)
	return s.repomanager.Audios(s.db).ListByUser(ctx, userID, limit, offset)
}

func (s *AudioService) DownloadURL(ctx context.Context, userID, audioID int64) (string, error) {

	audio, err := s.getOwned(ctx, userID, audioID)
	if err != nil {
		return "", err
	}

	return s.store.URL(ctx, audio.FilePath)
}

func (s *AudioService) Delete(ctx context.Context, userID, audioID int64) error {

	audio, err := s.getOwned(ctx, userID, audioID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Audios(s.db).Delete(ctx, audioID); err != nil {
		return fmt.Errorf("error deleting audio: %w", err)
	}

	if err := s.store.Delete(ctx, audio.FilePath); err != nil {
		s.logger.Warn(ctx, "failed to remove stored object", "key", audio.FilePath, "error", err)
	}

	return nil
}
