package entity

import (
	"time"
)

type NotificationLevel string

const (
	NotificationInfo  NotificationLevel = "info"
	NotificationError NotificationLevel = "error"
)

// Notification is the payload delivered synchronously to observers on every
// registry and identity mutation.
type Notification struct {
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Level   NotificationLevel `json:"level"`
	SentAt  time.Time         `json:"sent_at"`
}
