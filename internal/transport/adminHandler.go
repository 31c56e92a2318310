package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbuzz/campusbuzz-api/internal/entity"
	"github.com/campusbuzz/campusbuzz-api/internal/service"
)

type AdminHandler struct {
	eventService service.EventService
}

func NewAdminHandler(eventService service.EventService) *AdminHandler {
	return &AdminHandler{eventService: eventService}
}

// GetEvents lists the whole collection, optionally narrowed by status.
func (h *AdminHandler) GetEvents(c *gin.Context) {
	var (
		events []*entity.Event
		err    error
	)

	if status := c.Query("status"); status != "" {
		events, err = h.eventService.GetEventsByStatus(c.Request.Context(), entity.EventStatus(status))
	} else {
		events, err = h.eventService.GetAllEvents(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func (h *AdminHandler) ApproveEvent(c *gin.Context) {
	event, err := h.eventService.ApproveEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *AdminHandler) RejectEvent(c *gin.Context) {
	event, err := h.eventService.RejectEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *AdminHandler) transitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, entity.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type setFeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

func (h *AdminHandler) SetFeatured(c *gin.Context) {
	var req setFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.SetFeatured(c.Request.Context(), c.Param("id"), *req.Featured)
	if err != nil {
		if errors.Is(err, entity.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.eventService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
