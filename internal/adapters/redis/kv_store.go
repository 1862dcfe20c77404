package redis_adapter

import (
	"context"
	"errors"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/port"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client - команды Redis, которые использует хранилище.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisKeyValueStore хранит значения как строки под ключами <prefix><key>, без TTL.
type RedisKeyValueStore struct {
	client Client
	prefix string
}

func NewRedisKeyValueStore(client Client, prefix string) (*RedisKeyValueStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return &RedisKeyValueStore{client: client, prefix: prefix}, nil
}

func (r *RedisKeyValueStore) Read(ctx context.Context, key string) (string, bool, error) {
	fullKey := r.prefix + key

	value, err := r.client.Get(ctx, fullKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to read key from Redis", err, port.Fields{
			"component": "RedisKeyValueStore",
			"key":       fullKey,
		})
		return "", false, fmt.Errorf("failed to read key '%s': %w", fullKey, err)
	}
	return value, true, nil
}

func (r *RedisKeyValueStore) Write(ctx context.Context, key, value string) error {
	fullKey := r.prefix + key

	if err := r.client.Set(ctx, fullKey, value, 0).Err(); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to write key to Redis", err, port.Fields{
			"component": "RedisKeyValueStore",
			"key":       fullKey,
		})
		return fmt.Errorf("failed to write key '%s': %w", fullKey, err)
	}
	return nil
}
