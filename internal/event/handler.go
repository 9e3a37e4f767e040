package event

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oguzkaan/campus-events-backend/internal/auth"
	"github.com/oguzkaan/campus-events-backend/internal/media"
	"github.com/oguzkaan/campus-events-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// CreateEvent - POST /events (clubAdmin, admin)
func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	organizerName := ""
	if val, exists := c.Get("user"); exists {
		if u, ok := val.(auth.User); ok {
			organizerName = u.FullName
		}
	}

	e, err := h.service.Create(c.Request.Context(), &req, principal.UserID, organizerName, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrInvalidCapacity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// GetEvent - GET /events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	e, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to load event"})
		return
	}
	c.JSON(http.StatusOK, e)
}

// UpdateEvent - PUT /events/:id (owner only)
func (h *Handler) UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	e, err := h.service.Update(c.Request.Context(), c.Param("id"), principal.UserID, &req, middleware.GetIPFromContext(c))
	if err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, e)
}

// DeleteEvent - DELETE /events/:id (owner only)
func (h *Handler) DeleteEvent(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), principal.UserID, middleware.GetIPFromContext(c)); err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// AssignCategories - PUT /events/:id/categories (owner only)
func (h *Handler) AssignCategories(c *gin.Context) {
	var req AssignCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	e, err := h.service.AssignCategories(c.Request.Context(), c.Param("id"), principal.UserID, req.CategoryIDs)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, e)
}

// UploadPoster - POST /events/:id/poster (owner only)
func (h *Handler) UploadPoster(c *gin.Context) {
	file, err := c.FormFile("poster")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "poster file is required"})
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	e, err := h.service.AttachPoster(c.Request.Context(), c.Param("id"), principal.UserID, file)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrUnsupportedType):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		case errors.Is(err, media.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		default:
			h.respondMutationError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, e)
}

func (h *Handler) respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidCapacity),
		errors.Is(err, ErrCapacityTooLow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		// Anything not mapped above is a store failure, not a client error.
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to process event"})
	}
}

// parseDate accepts either RFC3339 or plain YYYY-MM-DD.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
