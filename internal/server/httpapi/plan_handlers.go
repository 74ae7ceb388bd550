package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/clipforge/clipforge/internal/server/services"
	"github.com/gin-gonic/gin"
)

type CuttingPlanService interface {
	Create(ctx context.Context, userID int64, in services.CuttingPlanCreate) (*models.CuttingPlan, error)
	Get(ctx context.Context, userID, planID int64) (*models.CuttingPlan, error)
	ListByProject(ctx context.Context, userID, projectID int64, limit, offset int) ([]*models.CuttingPlan, error)
	Update(ctx context.Context, userID, planID int64, upd services.CuttingPlanUpdate) (*models.CuttingPlan, error)
	Approve(ctx context.Context, userID, planID int64) (*models.CuttingPlan, error)
	Delete(ctx context.Context, userID, planID int64) error
}

type planHandler struct {
	svc CuttingPlanService
}

type createPlanRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Description *string         `json:"description"`
	ProjectID   int64           `json:"project_id" binding:"required"`
	VideoID     int64           `json:"video_id" binding:"required"`
	CutsData    json.RawMessage `json:"cuts_data"`
}

func (h *planHandler) create(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	plan, err := h.svc.Create(c.Request.Context(), currentUser(c).ID, services.CuttingPlanCreate{
		Name:        req.Name,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		VideoID:     req.VideoID,
		CutsData:    req.CutsData,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCuttingPlanResponse(plan))
}

func (h *planHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.svc.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCuttingPlanResponse(plan))
}

func (h *planHandler) listByProject(c *gin.Context) {
	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	plans, err := h.svc.ListByProject(c.Request.Context(), currentUser(c).ID, projectID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCuttingPlanResponses(plans))
}

type updatePlanRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	CutsData    json.RawMessage `json:"cuts_data"`
}

func (h *planHandler) update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	plan, err := h.svc.Update(c.Request.Context(), currentUser(c).ID, id, services.CuttingPlanUpdate{
		Name:        req.Name,
		Description: req.Description,
		CutsData:    req.CutsData,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCuttingPlanResponse(plan))
}

func (h *planHandler) approve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.svc.Approve(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCuttingPlanResponse(plan))
}

func (h *planHandler) delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
