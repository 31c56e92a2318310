package service

import (
	"sync"
	"time"

	"github.com/campusbuzz/campusbuzz-api/internal/entity"
)

// Subscriber receives every notification emitted by the registry and the
// identity store. Delivery is synchronous, in subscription order.
type Subscriber func(entity.Notification)

// Notifier is the shared observer list both services publish into. It
// replaces the implicit re-render triggering of the original client.
type Notifier struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Subscribe(s Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, s)
}

func (n *Notifier) Notify(level entity.NotificationLevel, title, message string) {
	notification := entity.Notification{
		Title:   title,
		Message: message,
		Level:   level,
		SentAt:  time.Now(),
	}

	n.mu.RLock()
	subscribers := make([]Subscriber, len(n.subscribers))
	copy(subscribers, n.subscribers)
	n.mu.RUnlock()

	for _, s := range subscribers {
		s(notification)
	}
}
