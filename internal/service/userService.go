package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/campusbuzz/campusbuzz-api/internal/database"
	"github.com/campusbuzz/campusbuzz-api/internal/entity"
)

// LoginRequest carries the credentials. The password is accepted but never
// verified; the identity is synthesized from the email alone.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest represents a full profile draft.
type RegisterUserRequest struct {
	Email     string      `json:"email" binding:"required,email"`
	Name      string      `json:"name" binding:"required,min=1,max=255"`
	Password  string      `json:"password" binding:"required,min=6"`
	Role      entity.Role `json:"role"`
	Interests []string    `json:"interests"`
}

// UpdateProfileRequest is a shallow patch; nil fields stay unchanged.
type UpdateProfileRequest struct {
	Name      *string  `json:"name,omitempty"`
	Avatar    *string  `json:"avatar,omitempty"`
	Badges    []string `json:"badges,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

type userService struct {
	mu       sync.Mutex
	store    database.Store
	notifier *Notifier

	// at most one current identity; nil when unauthenticated
	current *entity.User
}

// NewUserService loads a previously persisted identity if present;
// otherwise the store starts unauthenticated.
func NewUserService(ctx context.Context, store database.Store, notifier *Notifier) (UserService, error) {
	s := &userService{
		store:    store,
		notifier: notifier,
	}

	data, err := store.Load(ctx, database.KeyUser)
	switch {
	case err == entity.ErrKeyNotFound:
		// first run, stay unauthenticated
	case err != nil:
		return nil, fmt.Errorf("failed to load user: %w", err)
	default:
		var user entity.User
		if err := json.Unmarshal(data, &user); err != nil {
			logrus.Warnf("Persisted user is corrupted, starting unauthenticated: %v", err)
		} else {
			s.current = &user
		}
	}

	return s, nil
}

func (s *userService) persist(ctx context.Context) error {
	data, err := json.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	return s.store.Save(ctx, database.KeyUser, data)
}

func cloneUser(u *entity.User) *entity.User {
	clone := *u
	clone.Badges = append([]string(nil), u.Badges...)
	clone.Interests = append([]string(nil), u.Interests...)
	clone.RegisteredEvents = append([]string(nil), u.RegisteredEvents...)
	return &clone
}

// Login synthesizes an identity deterministically from the email: role by
// substring heuristic, name from the local part, avatar derived from the
// email. It always succeeds barring a persistence error.
func (s *userService) Login(ctx context.Context, req *LoginRequest) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &entity.User{
		ID:               uuid.New().String(),
		Email:            req.Email,
		Name:             entity.DisplayName(req.Email),
		Role:             entity.RoleFromEmail(req.Email),
		Avatar:           entity.AvatarURL(req.Email),
		Badges:           []string{"Early Adopter", "Event Enthusiast"},
		Interests:        []string{"Technology", "Music", "Sports"},
		RegisteredEvents: []string{},
		CreatedAt:        time.Now(),
	}

	s.current = user
	if err := s.persist(ctx); err != nil {
		s.current = nil
		s.notifier.Notify(entity.NotificationError, "Login failed",
			"Invalid credentials. Please try again.")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	s.notifier.Notify(entity.NotificationInfo, "Welcome back!",
		fmt.Sprintf("Logged in successfully as %s", user.Name))

	return cloneUser(user), nil
}

func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role := req.Role
	if role == "" {
		role = entity.RoleStudent
	}
	if !role.Valid() {
		return nil, entity.ErrInvalidRole
	}

	user := &entity.User{
		ID:               uuid.New().String(),
		Email:            req.Email,
		Name:             req.Name,
		Role:             role,
		Avatar:           entity.AvatarURL(req.Email),
		Badges:           []string{"New Member"},
		Interests:        append([]string(nil), req.Interests...),
		RegisteredEvents: []string{},
		CreatedAt:        time.Now(),
	}

	s.current = user
	if err := s.persist(ctx); err != nil {
		s.current = nil
		s.notifier.Notify(entity.NotificationError, "Registration failed",
			"Something went wrong. Please try again.")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.notifier.Notify(entity.NotificationInfo, "Welcome to CampusBuzz!",
		"Your account has been created successfully.")

	return cloneUser(user), nil
}

func (s *userService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, database.KeyUser); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	s.current = nil

	s.notifier.Notify(entity.NotificationInfo, "Logged out",
		"You have been logged out successfully.")

	return nil
}

func (s *userService) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, entity.ErrNotAuthenticated
	}

	if req.Name != nil {
		s.current.Name = *req.Name
	}
	if req.Avatar != nil {
		s.current.Avatar = *req.Avatar
	}
	if req.Badges != nil {
		s.current.Badges = append([]string(nil), req.Badges...)
	}
	if req.Interests != nil {
		s.current.Interests = append([]string(nil), req.Interests...)
	}

	if err := s.persist(ctx); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.notifier.Notify(entity.NotificationInfo, "Profile updated",
		"Your profile has been updated successfully.")

	return cloneUser(s.current), nil
}

func (s *userService) CurrentUser() (*entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, false
	}
	return cloneUser(s.current), true
}

// AddRegisteredEvent links a joined event id into the current identity.
// Called by the transport layer after a successful registry registration.
func (s *userService) AddRegisteredEvent(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return entity.ErrNotAuthenticated
	}

	for _, id := range s.current.RegisteredEvents {
		if id == eventID {
			return nil
		}
	}

	s.current.RegisteredEvents = append(s.current.RegisteredEvents, eventID)
	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("failed to record registered event: %w", err)
	}
	return nil
}
