package event

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oguzkaan/campus-events-backend/middleware"
)

type QueryHandler struct {
	service QueryService
}

func NewQueryHandler(s QueryService) *QueryHandler {
	return &QueryHandler{service: s}
}

// ListEvents - GET /events?page=&limit=&category=&search=&from=&to=
func (h *QueryHandler) ListEvents(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339 or YYYY-MM-DD"})
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339 or YYYY-MM-DD"})
		return
	}

	result, err := h.service.List(c.Request.Context(), ListFilter{
		Page:       page,
		Limit:      limit,
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
		StartDate:  from,
		EndDate:    to,
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchEvents - GET /events/search?q=&categories=&from=&to=
func (h *QueryHandler) SearchEvents(c *gin.Context) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339 or YYYY-MM-DD"})
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339 or YYYY-MM-DD"})
		return
	}

	var categoryIDs []string
	if raw := c.Query("categories"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				categoryIDs = append(categoryIDs, id)
			}
		}
	}

	events, err := h.service.Search(c.Request.Context(), SearchFilter{
		Query:       c.Query("q"),
		CategoryIDs: categoryIDs,
		StartDate:   from,
		EndDate:     to,
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to search events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// FeaturedEvents - GET /events/featured
func (h *QueryHandler) FeaturedEvents(c *gin.Context) {
	events, err := h.service.Featured(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to load featured events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// UpcomingEvents - GET /events/upcoming?limit=
func (h *QueryHandler) UpcomingEvents(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultUpcomingLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	events, err := h.service.Upcoming(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to load upcoming events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// MyEvents - GET /events/mine (events the caller created)
func (h *QueryHandler) MyEvents(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	events, err := h.service.ByCreator(c.Request.Context(), principal.UserID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to load events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// JoinedEvents - GET /events/joined (events the caller participates in)
func (h *QueryHandler) JoinedEvents(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	events, err := h.service.ByParticipant(c.Request.Context(), principal.UserID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to load events"})
		return
	}
	c.JSON(http.StatusOK, events)
}
