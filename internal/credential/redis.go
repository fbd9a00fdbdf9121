package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "credential:"

// RedisStore persists the token in Redis under a fixed key. Useful when the
// storefront process is stateless and sessions must survive restarts without
// local disk.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-connected Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Read(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+Key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("credential: redis get: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Write(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+Key, token, 0).Err(); err != nil {
		return fmt.Errorf("credential: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, redisKeyPrefix+Key).Err(); err != nil {
		return fmt.Errorf("credential: redis del: %w", err)
	}
	return nil
}
