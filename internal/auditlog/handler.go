package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// GetAuditLogs - GET /auditlogs?user_id=&event_id=&action=&status=&from=&to=&page=&limit=
func (h *Handler) GetAuditLogs(c *gin.Context) {
	var filter AuditLogFilter

	if v := c.Query("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := c.Query("event_id"); v != "" {
		filter.EventID = &v
	}
	filter.Action = c.Query("action")
	filter.Status = c.Query("status")

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, use RFC3339"})
			return
		}
		filter.FromDate = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, use RFC3339"})
			return
		}
		filter.ToDate = &t
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := h.service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to fetch audit logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}
