package entity

import (
	"time"
)

type EventCategory string

const (
	CategoryFest        EventCategory = "fest"
	CategoryWorkshop    EventCategory = "workshop"
	CategoryHackathon   EventCategory = "hackathon"
	CategorySeminar     EventCategory = "seminar"
	CategoryCompetition EventCategory = "competition"
	CategoryConference  EventCategory = "conference"
)

func (c EventCategory) Valid() bool {
	switch c {
	case CategoryFest, CategoryWorkshop, CategoryHackathon,
		CategorySeminar, CategoryCompetition, CategoryConference:
		return true
	}
	return false
}

type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
	EventStatusRejected EventStatus = "rejected"
)

const DateLayout = "2006-01-02"

type Event struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Category         EventCategory `json:"category"`
	Date             string        `json:"date"` // calendar date, YYYY-MM-DD
	Time             string        `json:"time"` // local time of day, HH:MM
	Location         string        `json:"location"`
	Organizer        string        `json:"organizer"`
	OrganizerID      string        `json:"organizerId"`
	Image            string        `json:"image,omitempty"`
	MaxAttendees     int           `json:"maxAttendees"`
	CurrentAttendees int           `json:"currentAttendees"`
	Price            float64       `json:"price"`
	Tags             []string      `json:"tags"`
	Status           EventStatus   `json:"status"`
	Featured         bool          `json:"featured"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// DateTime parses the Date field. Malformed dates yield the zero time so
// unparseable records sort first instead of breaking queries.
func (e *Event) DateTime() time.Time {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (e *Event) Full() bool {
	return e.CurrentAttendees >= e.MaxAttendees
}

// EventStats aggregates the registry for the admin dashboard.
type EventStats struct {
	TotalEvents    int `json:"total_events"`
	PendingEvents  int `json:"pending_events"`
	ApprovedEvents int `json:"approved_events"`
	RejectedEvents int `json:"rejected_events"`
	TotalAttendees int `json:"total_attendees"`
	FeaturedEvents int `json:"featured_events"`
}
