package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/brdtrack/internal/service"
	"github.com/gin-gonic/gin"
)

// fail writes err as JSON: validation errors as 400 with their reason,
// missing resources as 404 with notFound, anything else as 500 with
// generic and the error text as detail.
func (h *Handler) fail(c *gin.Context, err error, notFound, generic string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Reason}
		if verr.Err != nil {
			body["detail"] = verr.Err.Error()
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	default:
		h.log.ErrorContext(c.Request.Context(), generic,
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic, "detail": err.Error()})
	}
}

func badRequest(c *gin.Context, reason string, detail error) {
	body := gin.H{"error": reason}
	if detail != nil {
		body["detail"] = detail.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
