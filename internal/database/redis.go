package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/campusbuzz/campusbuzz-api/internal/entity"
)

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store backed by Redis. Keys are namespaced under
// "campusbuzz:" so the service can share an instance.
func NewRedisStore(client *redis.Client) (Store, error) {
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &redisStore{client: client}, nil
}

func redisKey(key string) string {
	return fmt.Sprintf("campusbuzz:%s", key)
}

func (s *redisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, entity.ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *redisStore) Save(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, redisKey(key), value, 0).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKey(key)).Err()
}
