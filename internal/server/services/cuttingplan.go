package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/dbx"
	"github.com/clipforge/clipforge/internal/server/config"
	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/clipforge/clipforge/internal/server/repositories/repomanager"
)

type CuttingPlanService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCuttingPlanService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *CuttingPlanService {
	return &CuttingPlanService{db: db, repomanager: m}
}

type CuttingPlanCreate struct {
	Name        string
	Description *string
	ProjectID   int64
	VideoID     int64
	CutsData    json.RawMessage
}

func (s *CuttingPlanService) Create(ctx context.Context, userID int64, in CuttingPlanCreate) (*models.CuttingPlan, error) {

	if _, err := getOwnedProject(ctx, s.repomanager.Projects(s.db), userID, in.ProjectID); err != nil {
		return nil, err
	}

	video, err := s.repomanager.Videos(s.db).GetByID(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	if video.ProjectID != in.ProjectID {
		return nil, fmt.Errorf("%w: video does not belong to project", common.ErrorInvalidArgument)
	}

	cuts := in.CutsData
	if cuts == nil {
		cuts = json.RawMessage("[]")
	}

	plan := &models.CuttingPlan{
		Name:        in.Name,
		Description: in.Description,
		CutsData:    cuts,
		Status:      models.CuttingPlanStatusDraft,
		ProjectID:   in.ProjectID,
		VideoID:     in.VideoID,
		CreatedByID: userID,
	}

	plan, err = s.repomanager.CuttingPlans(s.db).Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("error creating cutting plan: %w", err)
	}

	return plan, nil
}

func (s *CuttingPlanService) getOwned(ctx context.Context, userID, planID int64) (*models.CuttingPlan, error) {
	plan, err := s.repomanager.CuttingPlans(s.db).GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.CreatedByID != userID {
		return nil, common.ErrorForbidden
	}
	return plan, nil
}

func (s *CuttingPlanService) Get(ctx context.Context, userID, planID int64) (*models.CuttingPlan, error) {
	return s.getOwned(ctx, userID, planID)
}

func (s *CuttingPlanService) ListByProject(ctx context.Context, userID, projectID int64, limit, offset int) ([]*models.CuttingPlan, error) {

	if _, err := getOwnedProject(ctx, s.repomanager.Projects(s.db), userID, projectID); err != nil {
		return nil, err
	}

	limit, offset = clampPage(limit, offset)
	return s.repomanager.CuttingPlans(s.db).ListByProject(ctx, projectID, limit, offset)
}

type CuttingPlanUpdate struct {
	Name        *string
	Description *string
	CutsData    json.RawMessage
}

func (s *CuttingPlanService) Update(ctx context.Context, userID, planID int64, upd CuttingPlanUpdate) (*models.CuttingPlan, error) {

	repo := s.repomanager.CuttingPlans(s.db)

	plan, err := s.getOwned(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	if plan.Status != models.CuttingPlanStatusDraft {
		return nil, fmt.Errorf("%w: only draft plans can be edited", common.ErrorInvalidArgument)
	}

	if upd.Name != nil {
		plan.Name = *upd.Name
	}
	if upd.Description != nil {
		plan.Description = upd.Description
	}
	if upd.CutsData != nil {
		plan.CutsData = upd.CutsData
	}

	if err := repo.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("error updating cutting plan: %w", err)
	}

	return plan, nil
}

// Approve locks a draft plan so it can be exported. The status check and
// the write run in one transaction so two concurrent approvals cannot both
// succeed.
func (s *CuttingPlanService) Approve(ctx context.Context, userID, planID int64) (*models.CuttingPlan, error) {

	if _, err := s.getOwned(ctx, userID, planID); err != nil {
		return nil, err
	}

	var plan *models.CuttingPlan
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.CuttingPlans(tx)

		var err error
		plan, err = repoTx.GetByID(ctx, planID)
		if err != nil {
			return err
		}
		if plan.Status != models.CuttingPlanStatusDraft {
			return fmt.Errorf("%w: only draft plans can be approved", common.ErrorInvalidArgument)
		}

		now := nowUTC()
		plan.Status = models.CuttingPlanStatusApproved
		plan.ApprovedAt = &now

		if err := repoTx.Update(ctx, plan); err != nil {
			return fmt.Errorf("error approving cutting plan: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *CuttingPlanService) Delete(ctx context.Context, userID, planID int64) error {

	if _, err := s.getOwned(ctx, userID, planID); err != nil {
		return err
	}

	if err := s.repomanager.CuttingPlans(s.db).Delete(ctx, planID); err != nil {
		return fmt.Errorf("error deleting cutting plan: %w", err)
	}

	return nil
}
