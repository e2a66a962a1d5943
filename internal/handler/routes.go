// Package handler exposes the project services over HTTP with gin.
package handler

import (
	"io"
	"log/slog"

	"github.com/alexanderramin/brdtrack/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles the use cases the API serves.
type Services struct {
	Projects  service.ProjectService
	Imports   service.ImportService
	Dashboard service.DashboardService
	Gantt     service.GanttService
	Backups   service.BackupService
	History   service.HistoryService
}

type Options struct {
	CORSOrigins    []string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

type Handler struct {
	svc       Services
	log       *slog.Logger
	maxUpload int64
}

func New(svc Services, logger *slog.Logger, maxUploadBytes int64) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{svc: svc, log: logger, maxUpload: maxUploadBytes}
}

// NewRouter builds a gin engine with recovery, request logging and CORS
// middleware and every API route registered.
func NewRouter(svc Services, opts Options) *gin.Engine {
	h := New(svc, opts.Logger, opts.MaxUploadBytes)

	r := gin.New()
	r.Use(recovery(h.log), requestLogger(h.log))
	if c, ok := corsConfig(opts.CORSOrigins); ok {
		r.Use(cors.New(c))
	}
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}
	InitRoutes(r, h)
	return r
}

func InitRoutes(r *gin.Engine, h *Handler) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.GET("/projects", h.ListProjects)
	api.POST("/projects", h.CreateProject)
	api.PUT("/projects/:uid", h.UpdateProject)
	api.DELETE("/projects/:uid", h.DeleteProject)

	api.POST("/projects/import", limitBody(h.maxUpload), h.ImportProjects)
	api.GET("/projects/backups", h.ListBackups)
	api.POST("/projects/backups", h.CreateBackup)
	api.GET("/projects/backups/:name", h.DownloadBackup)
	api.GET("/projects/history", h.ListHistory)

	api.GET("/projects/export/excel", h.ExportExcel)
	api.GET("/projects/export/pdf", h.ExportPDF)

	api.GET("/dashboard/summary", h.DashboardSummary)
	api.GET("/timeline/events", h.TimelineEvents)
	api.GET("/projects/gantt", h.GanttTasks)
	api.PUT("/projects/gantt/:uid", h.UpdateGanttTask)
}

func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.ExposeHeaders = []string{"Content-Disposition"}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c, true
		}
	}
	c.AllowOrigins = origins
	return c, true
}
