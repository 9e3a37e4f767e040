package participation

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

// JoinEvent - POST /events/:id/join
func (h *Handler) JoinEvent(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	err := h.service.Join(c.Request.Context(), c.Param("id"), principal.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrEventFull), errors.Is(err, ErrAlreadyJoined):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrTooMuchContention):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to join event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "joined event"})
}

// LeaveEvent - POST /events/:id/leave
func (h *Handler) LeaveEvent(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	err := h.service.Leave(c.Request.Context(), c.Param("id"), principal.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotJoined):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to leave event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "left event"})
}

// ListParticipants - GET /events/:id/participants (owner only)
func (h *Handler) ListParticipants(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	participants, err := h.service.ListParticipants(c.Request.Context(), c.Param("id"), principal.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to list participants"})
		}
		return
	}

	c.JSON(http.StatusOK, participants)
}
