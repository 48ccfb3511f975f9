package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/islesim/internal/config"
)

// unreachable points at a port nothing listens on.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestNewRedisUnlockStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRedisUnlockStore(ctx, config.RedisConfig{Addr: "127.0.0.1:1", Key: "test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to redis")
}

func TestRedisUnlockStore_ErrorsWrapped(t *testing.T) {
	store := NewRedisUnlockStoreWithClient(unreachable(), "islesim:test")
	defer store.Close()
	ctx := context.Background()

	_, err := store.LoadUnlocked(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "islesim:test")

	err = store.SaveUnlocked(ctx, []string{"1,2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving unlocked regions")
}
