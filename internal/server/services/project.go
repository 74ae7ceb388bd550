package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/server/config"
	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/clipforge/clipforge/internal/server/repositories/projects"
	"github.com/clipforge/clipforge/internal/server/repositories/repomanager"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// clampPage normalizes limit/offset for list endpoints.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// getOwnedProject is the ownership guard every project-scoped operation
// goes through: a missing row is a 404, someone else's row is a 403.
func getOwnedProject(ctx context.Context, repo projects.Repository, userID, projectID int64) (*models.Project, error) {
	project, err := repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, common.ErrorForbidden
	}
	return project, nil
}

type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

type ProjectUpdate struct {
	Name         *string
	Description  *string
	ProjectType  *models.ProjectType
	TimelineData []byte
}

func (s *ProjectService) Create(ctx context.Context, userID int64, name string, description *string, projectType models.ProjectType) (*models.Project, error) {

	if projectType == "" {
		projectType = models.ProjectTypeCustom
	}
	if !projectType.Valid() {
		return nil, fmt.Errorf("%w: unknown project type %q", common.ErrorInvalidArgument, projectType)
	}

	project := &models.Project{
		Name:        name,
		Description: description,
		UserID:      userID,
		ProjectType: projectType,
		Status:      models.ProjectStatusDraft,
	}

	project, err := s.repomanager.Projects(s.db).Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}

	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, userID, projectID int64) (*models.Project, error) {
	return getOwnedProject(ctx, s.repomanager.Projects(s.db), userID, projectID)
}

func (s *ProjectService) List(ctx context.Context, userID int64, limit, offset int) ([]*models.Project, error) {
	limit, offset = clampPage(limit, offset)
	return s.repomanager.Projects(s.db).ListByUser(ctx, userID, limit, offset)
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID int64, upd ProjectUpdate) (*models.Project, error) {

	repo := s.repomanager.Projects(s.db)

	project, err := getOwnedProject(ctx, repo, userID, projectID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		project.Name = *upd.Name
	}
	if upd.Description != nil {
		project.Description = upd.Description
	}
	if upd.ProjectType != nil {
		if !upd.ProjectType.Valid() {
			return nil, fmt.Errorf("%w: unknown project type %q", common.ErrorInvalidArgument, *upd.ProjectType)
		}
		project.ProjectType = *upd.ProjectType
	}
	if upd.TimelineData != nil {
		project.TimelineData = upd.TimelineData
	}

	if err := repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("error updating project: %w", err)
	}

	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, projectID int64) error {

	repo := s.repomanager.Projects(s.db)

	if _, err := getOwnedProject(ctx, repo, userID, projectID); err != nil {
		return err
	}

	if err := repo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("error deleting project: %w", err)
	}

	return nil
}
