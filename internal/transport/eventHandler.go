package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusbuzz/campusbuzz-api/internal/entity"
	"github.com/campusbuzz/campusbuzz-api/internal/service"
)

type EventHandler struct {
	eventService service.EventService
	userService  service.UserService
}

func NewEventHandler(eventService service.EventService, userService service.UserService) *EventHandler {
	return &EventHandler{eventService: eventService, userService: userService}
}

// CreateEvent validates the draft before it reaches the registry: the
// registry itself performs no field validation.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": entity.ErrInvalidCategory.Error()})
		return
	}
	date, err := time.Parse(entity.DateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event date, expected YYYY-MM-DD"})
		return
	}
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": entity.ErrEventDatePast.Error()})
		return
	}

	// The creating identity becomes the organizer back-reference.
	user, ok := h.userService.CurrentUser()
	if ok {
		req.Organizer = user.Name
		req.OrganizerID = user.ID
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvents is the public listing: approved events only, filtered and
// sorted per query parameters.
func (h *EventHandler) GetEvents(c *gin.Context) {
	filter := &service.EventFilter{
		Search:   c.Query("search"),
		Category: c.DefaultQuery("category", "all"),
		SortBy:   c.DefaultQuery("sort", "date"),
	}

	events, err := h.eventService.SearchEvents(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func (h *EventHandler) GetFeaturedEvents(c *gin.Context) {
	events, err := h.eventService.GetFeaturedEvents(c.Request.Context(), 3)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("id"))
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

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if !h.canManage(c, id) {
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if event == nil {
		// registry treats unknown ids as a no-op
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if !h.canManage(c, id) {
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// canManage allows admins and the owning organizer through. Writes false
// responses itself.
func (h *EventHandler) canManage(c *gin.Context, eventID string) bool {
	user, ok := h.userService.CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": entity.ErrNotAuthenticated.Error()})
		return false
	}
	if user.Role == entity.RoleAdmin {
		return true
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		// let the operation itself report unknown ids
		return true
	}
	if event.OrganizerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": entity.ErrForbidden.Error()})
		return false
	}
	return true
}

// RegisterForEvent performs the capacity-gated registration and links the
// event into the identity's registered set.
func (h *EventHandler) RegisterForEvent(c *gin.Context) {
	user, ok := h.userService.CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": entity.ErrNotAuthenticated.Error()})
		return
	}

	event, err := h.eventService.RegisterForEvent(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, entity.ErrEventFull):
			c.JSON(http.StatusConflict, gin.H{"error": entity.ErrEventFull.Error()})
		case errors.Is(err, entity.ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": entity.ErrAlreadyRegistered.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := h.userService.AddRegisteredEvent(c.Request.Context(), event.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, event)
}

// GetOrganizerEvents returns the current organizer's own events, any status.
func (h *EventHandler) GetOrganizerEvents(c *gin.Context) {
	user, ok := h.userService.CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": entity.ErrNotAuthenticated.Error()})
		return
	}

	events, err := h.eventService.GetEventsByOrganizer(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}
