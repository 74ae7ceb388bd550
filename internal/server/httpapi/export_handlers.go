package httpapi

import (
	"context"
	"net/http"

	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/clipforge/clipforge/internal/server/services"
	"github.com/gin-gonic/gin"
)

type ExportJobService interface {
	Create(ctx context.Context, userID int64, in services.ExportJobCreate) (*models.ExportJob, error)
	Get(ctx context.Context, userID, jobID int64) (*models.ExportJob, error)
	ListByCuttingPlan(ctx context.Context, userID, planID int64, limit, offset int) ([]*models.ExportJob, error)
	Cancel(ctx context.Context, userID, jobID int64) (*models.ExportJob, error)
	Retry(ctx context.Context, userID, jobID int64) (*models.ExportJob, error)
}

type exportHandler struct {
	svc ExportJobService
}

type createExportRequest struct {
	CuttingPlanID int64    `json:"cutting_plan_id" binding:"required"`
	OutputFormat  string   `json:"output_format"`
	Resolution    string   `json:"resolution"`
	Quality       string   `json:"quality"`
	FPS           *float64 `json:"fps"`
	Bitrate       *int64   `json:"bitrate"`
}

func (h *exportHandler) create(c *gin.Context) {
	var req createExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	job, err := h.svc.Create(c.Request.Context(), currentUser(c).ID, services.ExportJobCreate{
		CuttingPlanID: req.CuttingPlanID,
		OutputFormat:  models.ExportFormat(req.OutputFormat),
		Resolution:    req.Resolution,
		Quality:       models.ExportQuality(req.Quality),
		FPS:           req.FPS,
		Bitrate:       req.Bitrate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toExportJobResponse(job))
}

func (h *exportHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	job, err := h.svc.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toExportJobResponse(job))
}

func (h *exportHandler) listByPlan(c *gin.Context) {
	planID, ok := idParam(c, "id")
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	jobs, err := h.svc.ListByCuttingPlan(c.Request.Context(), currentUser(c).ID, planID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toExportJobResponses(jobs))
}

func (h *exportHandler) cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	job, err := h.svc.Cancel(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toExportJobResponse(job))
}

func (h *exportHandler) retry(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	job, err := h.svc.Retry(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toExportJobResponse(job))
}
