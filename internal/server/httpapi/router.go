// Package httpapi exposes the REST surface: authentication, projects,
// media uploads, cutting plans and export jobs.
package httpapi

import (
	"net/http"

	"github.com/clipforge/clipforge/internal/server/config"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Auth         AuthService
	Projects     ProjectService
	Videos       VideoService
	Audios       AudioService
	CuttingPlans CuttingPlanService
	ExportJobs   ExportJobService
}

// NewRouter builds the gin engine with all routes attached.
func NewRouter(cfg *config.Config, svcs Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authH := &authHandler{svc: svcs.Auth}
	projectH := &projectHandler{svc: svcs.Projects}
	fileH := &fileHandler{videos: svcs.Videos, audios: svcs.Audios}
	planH := &planHandler{svc: svcs.CuttingPlans}
	exportH := &exportHandler{svc: svcs.ExportJobs}

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", authH.register)
	v1.POST("/auth/login", authH.login)

	authed := v1.Group("")
	authed.Use(AuthRequired(svcs.Auth))
	{
		authed.GET("/auth/me", authH.me)

		authed.POST("/projects", projectH.create)
		authed.GET("/projects", projectH.list)
		authed.GET("/projects/:id", projectH.get)
		authed.PATCH("/projects/:id", projectH.update)
		authed.DELETE("/projects/:id", projectH.delete)
		authed.GET("/projects/:id/videos", fileH.listProjectVideos)
		authed.GET("/projects/:id/cutting-plans", planH.listByProject)

		authed.POST("/files/videos", fileH.uploadVideo)
		authed.GET("/files/videos/:id", fileH.getVideo)
		authed.GET("/files/videos/:id/download", fileH.downloadVideo)
		authed.DELETE("/files/videos/:id", fileH.deleteVideo)

		authed.POST("/files/audios", fileH.uploadAudio)
		authed.GET("/files/audios", fileH.listAudios)
		authed.GET("/files/audios/:id", fileH.getAudio)
		authed.GET("/files/audios/:id/download", fileH.downloadAudio)
		authed.DELETE("/files/audios/:id", fileH.deleteAudio)

		authed.POST("/cutting-plans", planH.create)
		authed.GET("/cutting-plans/:id", planH.get)
		authed.PATCH("/cutting-plans/:id", planH.update)
		authed.POST("/cutting-plans/:id/approve", planH.approve)
		authed.DELETE("/cutting-plans/:id", planH.delete)
		authed.GET("/cutting-plans/:id/export-jobs", exportH.listByPlan)

		authed.POST("/export-jobs", exportH.create)
		authed.GET("/export-jobs/:id", exportH.get)
		authed.POST("/export-jobs/:id/cancel", exportH.cancel)
		authed.POST("/export-jobs/:id/retry", exportH.retry)
	}

	return router
}
