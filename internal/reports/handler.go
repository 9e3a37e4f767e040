package reports

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzkaan/campus-events-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ExportParticipants - GET /events/:id/participants/export?format=csv|xlsx|pdf
func (h *Handler) ExportParticipants(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	result, err := h.service.ExportParticipants(c.Request.Context(), c.Param("id"), principal.UserID, format)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUnsupportedFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to export participants"})
		}
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
