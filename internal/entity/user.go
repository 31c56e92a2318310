package entity

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             Role      `json:"role"`
	Avatar           string    `json:"avatar"`
	Badges           []string  `json:"badges"`
	Interests        []string  `json:"interests"`
	RegisteredEvents []string  `json:"registeredEvents"`
	CreatedAt        time.Time `json:"createdAt"`
}

// RoleFromEmail derives the role from the email string. There is no real
// credential store; the mapping is a substring heuristic and must never be
// treated as an auth mechanism.
func RoleFromEmail(email string) Role {
	switch {
	case strings.Contains(email, "admin"):
		return RoleAdmin
	case strings.Contains(email, "organizer"):
		return RoleOrganizer
	default:
		return RoleStudent
	}
}

// AvatarURL is a deterministic function of the email.
func AvatarURL(email string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", email)
}

// DisplayName is the local part of the email.
func DisplayName(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
