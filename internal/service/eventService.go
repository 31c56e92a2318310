package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/campusbuzz/campusbuzz-api/internal/database"
	"github.com/campusbuzz/campusbuzz-api/internal/entity"
)

// CreateEventRequest represents the data needed to create an event.
// Field validation (non-empty title, future date, positive capacity) is the
// transport layer's responsibility; the registry accepts the draft as-is.
type CreateEventRequest struct {
	Title        string               `json:"title" binding:"required,min=1,max=255"`
	Description  string               `json:"description" binding:"max=2000"`
	Category     entity.EventCategory `json:"category" binding:"required"`
	Date         string               `json:"date" binding:"required"`
	Time         string               `json:"time" binding:"required"`
	Location     string               `json:"location" binding:"required"`
	Organizer    string               `json:"organizer"`
	OrganizerID  string               `json:"organizerId"`
	Image        string               `json:"image"`
	MaxAttendees int                  `json:"maxAttendees" binding:"required,min=1"`
	Price        float64              `json:"price" binding:"min=0"`
	Tags         []string             `json:"tags"`
}

// UpdateEventRequest represents a shallow patch; nil fields stay unchanged.
type UpdateEventRequest struct {
	Title        *string               `json:"title,omitempty"`
	Description  *string               `json:"description,omitempty"`
	Category     *entity.EventCategory `json:"category,omitempty"`
	Date         *string               `json:"date,omitempty"`
	Time         *string               `json:"time,omitempty"`
	Location     *string               `json:"location,omitempty"`
	Image        *string               `json:"image,omitempty"`
	MaxAttendees *int                  `json:"maxAttendees,omitempty"`
	Price        *float64              `json:"price,omitempty"`
	Tags         []string              `json:"tags,omitempty"`
}

// EventFilter represents the public listing query: free-text search over
// title/description/organizer, category ("all" or empty matches everything)
// and sort order ("date", "popularity" or "name").
type EventFilter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	SortBy   string `json:"sort_by,omitempty"`
}

type eventService struct {
	mu       sync.Mutex
	store    database.Store
	notifier *Notifier

	// insertion-ordered collection, single in-process owner
	events []*entity.Event
	// event id -> user ids, keeps registration idempotent per pair
	registrations map[string][]string
}

// NewEventService loads the persisted collection, falling back to the seed
// dataset when the slot is empty or cannot be decoded.
func NewEventService(ctx context.Context, store database.Store, notifier *Notifier) (EventService, error) {
	s := &eventService{
		store:         store,
		notifier:      notifier,
		registrations: make(map[string][]string),
	}

	data, err := store.Load(ctx, database.KeyEvents)
	switch {
	case err == entity.ErrKeyNotFound:
		s.events = entity.SeedEvents()
		if err := s.persistEvents(ctx); err != nil {
			return nil, fmt.Errorf("failed to persist seed events: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load events: %w", err)
	default:
		if err := json.Unmarshal(data, &s.events); err != nil {
			logrus.Warnf("Persisted events are corrupted, falling back to seed data: %v", err)
			s.events = entity.SeedEvents()
			if err := s.persistEvents(ctx); err != nil {
				return nil, fmt.Errorf("failed to persist seed events: %w", err)
			}
		}
	}

	if data, err := store.Load(ctx, database.KeyRegistrations); err == nil {
		if err := json.Unmarshal(data, &s.registrations); err != nil {
			logrus.Warnf("Persisted registrations are corrupted, starting empty: %v", err)
			s.registrations = make(map[string][]string)
		}
	}

	return s, nil
}

func (s *eventService) persistEvents(ctx context.Context) error {
	data, err := json.Marshal(s.events)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	return s.store.Save(ctx, database.KeyEvents, data)
}

func (s *eventService) persistRegistrations(ctx context.Context) error {
	data, err := json.Marshal(s.registrations)
	if err != nil {
		return fmt.Errorf("failed to marshal registrations: %w", err)
	}
	return s.store.Save(ctx, database.KeyRegistrations, data)
}

func (s *eventService) find(id string) (int, *entity.Event) {
	for i, event := range s.events {
		if event.ID == id {
			return i, event
		}
	}
	return -1, nil
}

func cloneEvent(e *entity.Event) *entity.Event {
	clone := *e
	clone.Tags = append([]string(nil), e.Tags...)
	return &clone
}

func (s *eventService) CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := &entity.Event{
		ID:               uuid.New().String(),
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Date:             req.Date,
		Time:             req.Time,
		Location:         req.Location,
		Organizer:        req.Organizer,
		OrganizerID:      req.OrganizerID,
		Image:            req.Image,
		MaxAttendees:     req.MaxAttendees,
		CurrentAttendees: 0,
		Price:            req.Price,
		Tags:             append([]string(nil), req.Tags...),
		Status:           entity.EventStatusPending,
		Featured:         false,
		CreatedAt:        time.Now(),
	}

	s.events = append(s.events, event)
	if err := s.persistEvents(ctx); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.notifier.Notify(entity.NotificationInfo, "Event created!",
		"Your event has been submitted for approval.")

	return cloneEvent(event), nil
}

// UpdateEvent merges the patch into the matching record. An unknown id is a
// silent no-op returning a nil event.
func (s *eventService) UpdateEvent(ctx context.Context, id string, req *UpdateEventRequest) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, event := s.find(id)
	if event == nil {
		return nil, nil
	}

	applyPatch(event, req)
	if err := s.persistEvents(ctx); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.notifier.Notify(entity.NotificationInfo, "Event updated",
		"Event has been updated successfully.")

	return cloneEvent(event), nil
}

func applyPatch(event *entity.Event, req *UpdateEventRequest) {
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Image != nil {
		event.Image = *req.Image
	}
	if req.MaxAttendees != nil {
		event.MaxAttendees = *req.MaxAttendees
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.Tags != nil {
		event.Tags = append([]string(nil), req.Tags...)
	}
}

// DeleteEvent removes the matching record. An unknown id is a silent no-op.
func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, event := s.find(id)
	if event == nil {
		return nil
	}

	s.events = append(s.events[:i], s.events[i+1:]...)
	delete(s.registrations, id)

	if err := s.persistEvents(ctx); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if err := s.persistRegistrations(ctx); err != nil {
		return fmt.Errorf("failed to delete event registrations: %w", err)
	}

	s.notifier.Notify(entity.NotificationInfo, "Event deleted",
		"Event has been deleted successfully.")

	return nil
}

// RegisterForEvent increments attendance by one, keeping
// 0 <= currentAttendees <= maxAttendees. Registration is idempotent per
// (event, user) pair.
func (s *eventService) RegisterForEvent(ctx context.Context, eventID, userID string) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, event := s.find(eventID)
	if event == nil {
		return nil, entity.ErrEventNotFound
	}

	if event.Full() {
		s.notifier.Notify(entity.NotificationError, "Event full",
			"This event has reached maximum capacity.")
		return nil, entity.ErrEventFull
	}

	for _, registered := range s.registrations[eventID] {
		if registered == userID {
			return nil, entity.ErrAlreadyRegistered
		}
	}

	event.CurrentAttendees++
	s.registrations[eventID] = append(s.registrations[eventID], userID)

	if err := s.persistEvents(ctx); err != nil {
		event.CurrentAttendees--
		s.registrations[eventID] = s.registrations[eventID][:len(s.registrations[eventID])-1]
		return nil, fmt.Errorf("failed to register for event: %w", err)
	}
	if err := s.persistRegistrations(ctx); err != nil {
		return nil, fmt.Errorf("failed to persist registration: %w", err)
	}

	s.notifier.Notify(entity.NotificationInfo, "Registration successful!",
		fmt.Sprintf("You've been registered for %s", event.Title))

	return cloneEvent(event), nil
}

func (s *eventService) GetEvent(_ context.Context, id string) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, event := s.find(id)
	if event == nil {
		return nil, entity.ErrEventNotFound
	}
	return cloneEvent(event), nil
}

func (s *eventService) GetAllEvents(_ context.Context) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collect(func(*entity.Event) bool { return true }), nil
}

// SearchEvents returns the public listing: approved events only, filtered
// by free-text match and category, sorted per the filter.
func (s *eventService) SearchEvents(_ context.Context, filter *EventFilter) ([]*entity.Event, error) {
	if filter == nil {
		filter = &EventFilter{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	search := strings.ToLower(filter.Search)
	events := s.collect(func(e *entity.Event) bool {
		if e.Status != entity.EventStatusApproved {
			return false
		}
		if filter.Category != "" && filter.Category != "all" &&
			string(e.Category) != filter.Category {
			return false
		}
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(e.Title), search) ||
			strings.Contains(strings.ToLower(e.Description), search) ||
			strings.Contains(strings.ToLower(e.Organizer), search)
	})

	sortEvents(events, filter.SortBy)
	return events, nil
}

func sortEvents(events []*entity.Event, sortBy string) {
	switch sortBy {
	case "popularity":
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].CurrentAttendees > events[j].CurrentAttendees
		})
	case "name":
		sort.SliceStable(events, func(i, j int) bool {
			return strings.ToLower(events[i].Title) < strings.ToLower(events[j].Title)
		})
	default: // "date"
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].DateTime().Before(events[j].DateTime())
		})
	}
}

func (s *eventService) GetEventsByOrganizer(_ context.Context, organizerID string) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collect(func(e *entity.Event) bool {
		return e.OrganizerID == organizerID
	}), nil
}

func (s *eventService) GetEventsByStatus(_ context.Context, status entity.EventStatus) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collect(func(e *entity.Event) bool {
		return e.Status == status
	}), nil
}

func (s *eventService) GetFeaturedEvents(_ context.Context, limit int) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.collect(func(e *entity.Event) bool {
		return e.Featured && e.Status == entity.EventStatusApproved
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// collect returns clones of all events matching the predicate, preserving
// insertion order. Caller must hold the mutex.
func (s *eventService) collect(match func(*entity.Event) bool) []*entity.Event {
	var events []*entity.Event
	for _, event := range s.events {
		if match(event) {
			events = append(events, cloneEvent(event))
		}
	}
	return events
}

// ApproveEvent transitions pending -> approved. Any other starting state is
// refused; approved and rejected are terminal.
func (s *eventService) ApproveEvent(ctx context.Context, id string) (*entity.Event, error) {
	return s.transition(ctx, id, entity.EventStatusApproved,
		"Event approved", "The event has been approved and is now live.")
}

// RejectEvent transitions pending -> rejected.
func (s *eventService) RejectEvent(ctx context.Context, id string) (*entity.Event, error) {
	return s.transition(ctx, id, entity.EventStatusRejected,
		"Event rejected", "The event has been rejected.")
}

func (s *eventService) transition(ctx context.Context, id string, to entity.EventStatus, title, message string) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, event := s.find(id)
	if event == nil {
		return nil, entity.ErrEventNotFound
	}
	if event.Status != entity.EventStatusPending {
		return nil, entity.ErrInvalidTransition
	}

	event.Status = to
	if err := s.persistEvents(ctx); err != nil {
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}

	s.notifier.Notify(entity.NotificationInfo, title, message)
	return cloneEvent(event), nil
}

func (s *eventService) SetFeatured(ctx context.Context, id string, featured bool) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, event := s.find(id)
	if event == nil {
		return nil, entity.ErrEventNotFound
	}

	event.Featured = featured
	if err := s.persistEvents(ctx); err != nil {
		return nil, fmt.Errorf("failed to update featured flag: %w", err)
	}

	return cloneEvent(event), nil
}

func (s *eventService) GetStats(_ context.Context) (*entity.EventStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &entity.EventStats{TotalEvents: len(s.events)}
	for _, event := range s.events {
		switch event.Status {
		case entity.EventStatusPending:
			stats.PendingEvents++
		case entity.EventStatusApproved:
			stats.ApprovedEvents++
		case entity.EventStatusRejected:
			stats.RejectedEvents++
		}
		if event.Featured {
			stats.FeaturedEvents++
		}
		stats.TotalAttendees += event.CurrentAttendees
	}
	return stats, nil
}
