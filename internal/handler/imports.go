package handler

import (
	"net/http"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ImportProjects(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file uploaded", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "Failed to read Excel", err)
		return
	}
	defer f.Close()

	res, err := h.svc.Imports.Import(c.Request.Context(), f, service.ImportOptions{
		Mode:  c.PostForm("mode"),
		Sheet: c.PostForm("sheet"),
	})
	if err != nil {
		h.fail(c, err, "", "Import failed")
		return
	}

	body := gin.H{"ok": true, "mode": res.Mode, "imported": res.Imported}
	if res.Mode == domain.ImportReplace {
		var backup any
		if res.Backup != "" {
			backup = res.Backup
		}
		body["backup"] = backup
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) ListBackups(c *gin.Context) {
	names, err := h.svc.Backups.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "", "Failed to list backups")
		return
	}
	c.JSON(http.StatusOK, gin.H{"backups": names})
}

func (h *Handler) CreateBackup(c *gin.Context) {
	name, err := h.svc.Backups.Create(c.Request.Context())
	if err != nil {
		h.fail(c, err, "", "Failed to create backup")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"backup": name})
}

func (h *Handler) DownloadBackup(c *gin.Context) {
	name := c.Param("name")
	path, err := h.svc.Backups.Path(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err, "Backup not found", "Failed to open backup")
		return
	}
	c.FileAttachment(path, name)
}
