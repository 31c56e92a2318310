package database

import "context"

// Persisted slot names. Each key holds one JSON document owned by exactly
// one service.
const (
	KeyEvents        = "events"
	KeyUser          = "user"
	KeyRegistrations = "registrations"
)

// Store is the injectable key-value persistence slot behind the registry and
// the identity store. Swapping the backend must never change service logic.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
