package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound     = errors.New("event not found")
	ErrEventFull         = errors.New("event has reached maximum capacity")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrInvalidTransition = errors.New("invalid event status transition")
	ErrInvalidCategory   = errors.New("invalid event category")
	ErrEventDatePast     = errors.New("event date cannot be in the past")
	ErrInvalidCapacity   = errors.New("event capacity must be positive")

	// User errors
	ErrNotAuthenticated = errors.New("no authenticated user")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrInvalidRole      = errors.New("invalid user role")
	ErrForbidden        = errors.New("forbidden operation")

	// Storage errors
	ErrKeyNotFound = errors.New("key not found")
)
