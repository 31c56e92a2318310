package service

import (
	"context"

	"github.com/campusbuzz/campusbuzz-api/internal/entity"
)

// EventService owns the event collection: CRUD, capacity-gated registration,
// derived queries and the admin approval lifecycle.
type EventService interface {
	// Core mutations
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error)
	UpdateEvent(ctx context.Context, id string, req *UpdateEventRequest) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	RegisterForEvent(ctx context.Context, eventID, userID string) (*entity.Event, error)

	// Queries (computed on read, never persisted)
	GetEvent(ctx context.Context, id string) (*entity.Event, error)
	GetAllEvents(ctx context.Context) ([]*entity.Event, error)
	SearchEvents(ctx context.Context, filter *EventFilter) ([]*entity.Event, error)
	GetEventsByOrganizer(ctx context.Context, organizerID string) ([]*entity.Event, error)
	GetEventsByStatus(ctx context.Context, status entity.EventStatus) ([]*entity.Event, error)
	GetFeaturedEvents(ctx context.Context, limit int) ([]*entity.Event, error)

	// Admin lifecycle
	ApproveEvent(ctx context.Context, id string) (*entity.Event, error)
	RejectEvent(ctx context.Context, id string) (*entity.Event, error)
	SetFeatured(ctx context.Context, id string, featured bool) (*entity.Event, error)
	GetStats(ctx context.Context) (*entity.EventStats, error)
}

// UserService owns the single current identity. Identities are synthesized
// locally; nothing is ever verified against a credential store.
type UserService interface {
	Login(ctx context.Context, req *LoginRequest) (*entity.User, error)
	Register(ctx context.Context, req *RegisterUserRequest) (*entity.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*entity.User, error)
	CurrentUser() (*entity.User, bool)
	AddRegisteredEvent(ctx context.Context, eventID string) error
}
