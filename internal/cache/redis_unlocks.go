// Package cache keeps the unlocked region set in Redis.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-redis/redis/v8"

	"github.com/udisondev/islesim/internal/config"
)

// RedisUnlockStore persists unlocked region keys as a Redis set.
// Implements world.UnlockStore.
type RedisUnlockStore struct {
	client *redis.Client
	key    string
}

// NewRedisUnlockStore connects to Redis and verifies the connection.
func NewRedisUnlockStore(ctx context.Context, cfg config.RedisConfig) (*RedisUnlockStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}

	slog.Info("connected to redis", "addr", cfg.Addr, "key", cfg.Key)
	return NewRedisUnlockStoreWithClient(client, cfg.Key), nil
}

// NewRedisUnlockStoreWithClient wraps an existing client.
func NewRedisUnlockStoreWithClient(client *redis.Client, key string) *RedisUnlockStore {
	return &RedisUnlockStore{client: client, key: key}
}

// LoadUnlocked returns the stored keys sorted.
func (s *RedisUnlockStore) LoadUnlocked(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("loading unlocked regions from %s: %w", s.key, err)
	}
	slices.Sort(keys)
	return keys, nil
}

// SaveUnlocked replaces the stored set with keys atomically.
func (s *RedisUnlockStore) SaveUnlocked(ctx context.Context, keys []string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(keys) > 0 {
			members := make([]interface{}, len(keys))
			for i, k := range keys {
				members[i] = k
			}
			pipe.SAdd(ctx, s.key, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving unlocked regions to %s: %w", s.key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisUnlockStore) Close() error {
	return s.client.Close()
}
