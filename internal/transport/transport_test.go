package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbuzz/campusbuzz-api/internal/database"
	"github.com/campusbuzz/campusbuzz-api/internal/entity"
	"github.com/campusbuzz/campusbuzz-api/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := database.NewMemoryStore()
	notifier := service.NewNotifier()

	eventService, err := service.NewEventService(context.Background(), store, notifier)
	require.NoError(t, err)
	userService, err := service.NewUserService(context.Background(), store, notifier)
	require.NoError(t, err)

	return InitRoutes(
		NewEventHandler(eventService, userService),
		NewUserHandler(userService),
		NewAdminHandler(eventService),
		userService,
	)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine, email string) entity.User {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    email,
		"password": "anything",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var user entity.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func futureDraft(title string) gin.H {
	return gin.H{
		"title":        title,
		"description":  "test event",
		"category":     "workshop",
		"date":         "2030-09-01",
		"time":         "10:00",
		"location":     "Lab 2",
		"maxAttendees": 40,
		"price":        0,
		"tags":         []string{"Test"},
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicListing(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/events", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []entity.Event `json:"events"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	for _, event := range resp.Events {
		assert.Equal(t, entity.EventStatusApproved, event.Status)
	}
}

func TestPublicListingFilters(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/events?category=fest&search=tech", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []entity.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "TechFest 2024", resp.Events[0].Title)
}

func TestCreateEventRoleGate(t *testing.T) {
	router := newTestRouter(t)

	// unauthenticated
	w := doJSON(t, router, http.MethodPost, "/api/v1/events", futureDraft("Blocked"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// students cannot create events
	login(t, router, "student@demo.com")
	w = doJSON(t, router, http.MethodPost, "/api/v1/events", futureDraft("Blocked"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// organizers can
	organizer := login(t, router, "organizer@demo.com")
	w = doJSON(t, router, http.MethodPost, "/api/v1/events", futureDraft("Guitar Night"))
	require.Equal(t, http.StatusCreated, w.Code)

	var event entity.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.Equal(t, entity.EventStatusPending, event.Status)
	assert.Equal(t, organizer.ID, event.OrganizerID)
	assert.Equal(t, organizer.Name, event.Organizer)
}

func TestCreateEventValidation(t *testing.T) {
	router := newTestRouter(t)
	login(t, router, "organizer@demo.com")

	tests := []struct {
		name   string
		mutate func(gin.H)
	}{
		{
			name:   "missing title",
			mutate: func(d gin.H) { delete(d, "title") },
		},
		{
			name:   "unknown category",
			mutate: func(d gin.H) { d["category"] = "rave" },
		},
		{
			name:   "malformed date",
			mutate: func(d gin.H) { d["date"] = "next tuesday" },
		},
		{
			name:   "past date",
			mutate: func(d gin.H) { d["date"] = "2020-01-01" },
		},
		{
			name:   "zero capacity",
			mutate: func(d gin.H) { d["maxAttendees"] = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := futureDraft("Invalid")
			tt.mutate(draft)

			w := doJSON(t, router, http.MethodPost, "/api/v1/events", draft)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterForEventFlow(t *testing.T) {
	router := newTestRouter(t)

	// registration requires an identity
	w := doJSON(t, router, http.MethodPost, "/api/v1/events/2/register", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login(t, router, "student@demo.com")

	w = doJSON(t, router, http.MethodPost, "/api/v1/events/2/register", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var event entity.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.Equal(t, 33, event.CurrentAttendees)

	// the joined event is linked into the identity
	w = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me entity.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Contains(t, me.RegisteredEvents, "2")

	// double registration conflicts
	w = doJSON(t, router, http.MethodPost, "/api/v1/events/2/register", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// unknown event
	w = doJSON(t, router, http.MethodPost, "/api/v1/events/nope/register", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminApprovalFlow(t *testing.T) {
	router := newTestRouter(t)

	// admin gate
	login(t, router, "student@demo.com")
	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/stats", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := login(t, router, "admin@demo.com")
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	w = doJSON(t, router, http.MethodPost, "/api/v1/events", futureDraft("Needs Approval"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created entity.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// pending events stay off the public listing
	w = doJSON(t, router, http.MethodGet, "/api/v1/events", nil)
	var listing struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 3, listing.Count)

	path := fmt.Sprintf("/api/v1/admin/events/%s/approve", created.ID)
	w = doJSON(t, router, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// now it is public
	w = doJSON(t, router, http.MethodGet, "/api/v1/events", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 4, listing.Count)

	// approved is terminal
	w = doJSON(t, router, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// pending filter on the admin listing
	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/events?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 0, listing.Count)
}

func TestUpdateEventOwnership(t *testing.T) {
	router := newTestRouter(t)

	login(t, router, "organizer@demo.com")
	w := doJSON(t, router, http.MethodPost, "/api/v1/events", futureDraft("Owned"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created entity.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// a different organizer cannot touch it
	login(t, router, "other.organizer@demo.com")
	w = doJSON(t, router, http.MethodPut, "/api/v1/events/"+created.ID, gin.H{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admins can
	login(t, router, "admin@demo.com")
	w = doJSON(t, router, http.MethodPut, "/api/v1/events/"+created.ID, gin.H{"title": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated entity.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Title)

	// unknown ids surface as 404 at the HTTP boundary
	w = doJSON(t, router, http.MethodPut, "/api/v1/events/nope", gin.H{"title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileUpdateFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/v1/auth/profile", gin.H{"name": "Nobody"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login(t, router, "student@demo.com")
	w = doJSON(t, router, http.MethodPut, "/api/v1/auth/profile", gin.H{
		"name":      "New Name",
		"interests": []string{"Chess"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var user entity.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, []string{"Chess"}, user.Interests)

	// logout clears the identity
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFeaturedEvents(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/events/featured", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []entity.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 2)
	for _, event := range resp.Events {
		assert.True(t, event.Featured)
	}
}
