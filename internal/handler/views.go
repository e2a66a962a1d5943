package handler

import (
	"bytes"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/export"
	"github.com/alexanderramin/brdtrack/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultHistory  = 100
)

func (h *Handler) DashboardSummary(c *gin.Context) {
	sum, err := h.svc.Dashboard.Summary(c.Request.Context())
	if err != nil {
		h.fail(c, err, "", "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *Handler) TimelineEvents(c *gin.Context) {
	events, err := h.svc.Dashboard.Timeline(c.Request.Context())
	if err != nil {
		h.fail(c, err, "", "Failed to build timeline")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *Handler) GanttTasks(c *gin.Context) {
	tasks, err := h.svc.Gantt.Tasks(c.Request.Context())
	if err != nil {
		h.fail(c, err, "", "Failed to build gantt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type ganttUpdateRequest struct {
	Start    *string `json:"start"`
	End      *string `json:"end"`
	Progress any     `json:"progress"`
}

func (h *Handler) UpdateGanttTask(c *gin.Context) {
	var req ganttUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON body", err)
		return
	}
	progress, err := parseProgress(req.Progress)
	if err != nil {
		badRequest(c, "Invalid progress", err)
		return
	}

	updated, err := h.svc.Gantt.Update(c.Request.Context(), c.Param("uid"), service.GanttUpdate{
		Start:    req.Start,
		End:      req.End,
		Progress: progress,
	})
	if err != nil {
		h.fail(c, err, "Task not found", "Failed to save task update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": updated})
}

// parseProgress accepts a JSON number or a numeric string, clamped to
// 0..100 and truncated to an integer. A missing value yields nil.
func parseProgress(v any) (*int, error) {
	var f float64
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, err
		}
		f = parsed
	default:
		return nil, errors.New("progress must be a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.New("progress must be finite")
	}
	var n int
	switch {
	case f >= 100:
		n = 100
	case f <= 0:
		n = 0
	default:
		n = int(f)
	}
	return &n, nil
}

func (h *Handler) ListHistory(c *gin.Context) {
	limit := defaultHistory
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "Invalid limit", err)
			return
		}
		limit = n
	}
	entries, err := h.svc.History.List(c.Request.Context(), c.Query("uid"), limit)
	if err != nil {
		h.fail(c, err, "", "Failed to read history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (h *Handler) ExportExcel(c *gin.Context) {
	records, err := h.svc.Projects.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "", "Export Excel failed")
		return
	}
	var buf bytes.Buffer
	if err := export.WriteExcel(&buf, records); err != nil {
		h.fail(c, err, "", "Export Excel failed")
		return
	}
	attachment(c, "projects.xlsx", xlsxContentType, buf.Bytes())
}

func (h *Handler) ExportPDF(c *gin.Context) {
	records, err := h.svc.Projects.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "", "Export PDF failed")
		return
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, records); err != nil {
		h.fail(c, err, "", "Export PDF failed")
		return
	}
	attachment(c, "projects.pdf", "application/pdf", buf.Bytes())
}

func attachment(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}
