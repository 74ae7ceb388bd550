package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/clipforge/clipforge/internal/server/services"
	"github.com/gin-gonic/gin"
)

type VideoService interface {
	Upload(ctx context.Context, userID int64, up services.VideoUpload) (*models.Video, error)
	Get(ctx context.Context, userID, videoID int64) (*models.Video, error)
	ListByProject(ctx context.Context, userID, projectID int64, limit, offset int) ([]*models.Video, error)
	DownloadURL(ctx context.Context, userID, videoID int64) (string, error)
	Delete(ctx context.Context, userID, videoID int64) error
}

type AudioService interface {
	Upload(ctx context.Context, userID int64, up services.AudioUpload) (*models.Audio, error)
	Get(ctx context.Context, userID, audioID int64) (*models.Audio, error)
	List(ctx context.Context, userID int64, limit, offset int) ([]*models.Audio, error)
	DownloadURL(ctx context.Context, userID, audioID int64) (string, error)
	Delete(ctx context.Context, userID, audioID int64) error
}

type fileHandler struct {
	videos VideoService
	audios AudioService
}

// optionalFormString returns nil for absent or empty form values.
func optionalFormString(c *gin.Context, name string) *string {
	v := c.PostForm(name)
	if v == "" {
		return nil
	}
	return &v
}

func (h *fileHandler) uploadVideo(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.PostForm("project_id"), 10, 64)
	if err != nil || projectID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid project_id"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	video, err := h.videos.Upload(c.Request.Context(), currentUser(c).ID, services.VideoUpload{
		ProjectID:        projectID,
		OriginalFilename: fh.Filename,
		Title:            optionalFormString(c, "title"),
		Description:      optionalFormString(c, "description"),
		ContentType:      fh.Header.Get("Content-Type"),
		Size:             fh.Size,
		Body:             f,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toVideoResponse(video))
}

func (h *fileHandler) getVideo(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	video, err := h.videos.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVideoResponse(video))
}

func (h *fileHandler) listProjectVideos(c *gin.Context) {
	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	videos, err := h.videos.ListByProject(c.Request.Context(), currentUser(c).ID, projectID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVideoResponses(videos))
}

func (h *fileHandler) downloadVideo(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	url, err := h.videos.DownloadURL(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_url": url})
}

func (h *fileHandler) deleteVideo(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.videos.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *fileHandler) uploadAudio(c *gin.Context) {
	var projectID *int64
	if raw := c.PostForm("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid project_id"})
			return
		}
		projectID = &id
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	audio, err := h.audios.Upload(c.Request.Context(), currentUser(c).ID, services.AudioUpload{
		ProjectID:        projectID,
		OriginalFilename: fh.Filename,
		Title:            optionalFormString(c, "title"),
		Description:      optionalFormString(c, "description"),
		ContentType:      fh.Header.Get("Content-Type"),
		Size:             fh.Size,
		Body:             f,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAudioResponse(audio))
}

func (h *fileHandler) getAudio(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	audio, err := h.audios.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAudioResponse(audio))
}

func (h *fileHandler) listAudios(c *gin.Context) {
	limit, offset := pageParams(c)

	audios, err := h.audios.List(c.Request.Context(), currentUser(c).ID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAudioResponses(audios))
}

func (h *fileHandler) downloadAudio(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	url, err := h.audios.DownloadURL(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_url": url})
}

func (h *fileHandler) deleteAudio(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.audios.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
