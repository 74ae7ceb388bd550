package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/clipforge/clipforge/internal/server/services"
	"github.com/gin-gonic/gin"
)

type ProjectService interface {
	Create(ctx context.Context, userID int64, name string, description *string, projectType models.ProjectType) (*models.Project, error)
	Get(ctx context.Context, userID, projectID int64) (*models.Project, error)
	List(ctx context.Context, userID int64, limit, offset int) ([]*models.Project, error)
	Update(ctx context.Context, userID, projectID int64, upd services.ProjectUpdate) (*models.Project, error)
	Delete(ctx context.Context, userID, projectID int64) error
}

type projectHandler struct {
	svc ProjectService
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid " + name})
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

type createProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	ProjectType string  `json:"project_type"`
}

func (h *projectHandler) create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	project, err := h.svc.Create(c.Request.Context(), currentUser(c).ID,
		req.Name, req.Description, models.ProjectType(req.ProjectType))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (h *projectHandler) list(c *gin.Context) {
	limit, offset := pageParams(c)

	projects, err := h.svc.List(c.Request.Context(), currentUser(c).ID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponses(projects))
}

func (h *projectHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	project, err := h.svc.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

type updateProjectRequest struct {
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	ProjectType  *string         `json:"project_type"`
	TimelineData json.RawMessage `json:"timeline_data"`
}

func (h *projectHandler) update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	upd := services.ProjectUpdate{
		Name:         req.Name,
		Description:  req.Description,
		TimelineData: req.TimelineData,
	}
	if req.ProjectType != nil {
		t := models.ProjectType(*req.ProjectType)
		upd.ProjectType = &t
	}

	project, err := h.svc.Update(c.Request.Context(), currentUser(c).ID, id, upd)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *projectHandler) delete(c *gin.Context) {
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
