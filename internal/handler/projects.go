package handler

import (
	"net/http"

	"github.com/alexanderramin/brdtrack/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) ListProjects(c *gin.Context) {
	records, err := h.svc.Projects.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "", "Failed to load projects")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var payload service.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "Invalid JSON body", err)
		return
	}
	created, err := h.svc.Projects.Create(c.Request.Context(), payload)
	if err != nil {
		h.fail(c, err, "", "Failed to save project")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var payload service.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "Invalid JSON body", err)
		return
	}
	updated, err := h.svc.Projects.Update(c.Request.Context(), c.Param("uid"), payload)
	if err != nil {
		h.fail(c, err, "Project not found", "Failed to save update")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.svc.Projects.Delete(c.Request.Context(), c.Param("uid")); err != nil {
		h.fail(c, err, "Project not found", "Failed to delete project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": 1})
}
