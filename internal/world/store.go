package world

import (
	"context"
	"slices"
	"sync"

	"github.com/udisondev/islesim/internal/model"
)

// UnlockStore persists the set of unlocked region keys ("gx,gy").
// Implemented in memory here, in PostgreSQL by internal/db and in Redis by
// internal/cache.
type UnlockStore interface {
	LoadUnlocked(ctx context.Context) ([]string, error)
	SaveUnlocked(ctx context.Context, keys []string) error
}

// BiomeChecker decides walkability outside every zone (the open world
// past the home exits).
type BiomeChecker interface {
	IsOpenWorldWalkable(p model.Vec2) bool
}

// BiomeFunc adapts a function to BiomeChecker.
type BiomeFunc func(p model.Vec2) bool

// IsOpenWorldWalkable calls f(p).
func (f BiomeFunc) IsOpenWorldWalkable(p model.Vec2) bool { return f(p) }

// MemoryUnlockStore keeps the unlock set in process memory.
type MemoryUnlockStore struct {
	mu   sync.Mutex
	keys []string
}

// NewMemoryUnlockStore creates store pre-seeded with keys.
func NewMemoryUnlockStore(keys ...string) *MemoryUnlockStore {
	return &MemoryUnlockStore{keys: slices.Clone(keys)}
}

// LoadUnlocked returns a copy of the stored keys.
func (s *MemoryUnlockStore) LoadUnlocked(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.keys), nil
}

// SaveUnlocked replaces the stored keys.
func (s *MemoryUnlockStore) SaveUnlocked(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = slices.Clone(keys)
	return nil
}
