package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnlockRepository persists the set of unlocked region keys ("gx,gy").
// Implements world.UnlockStore.
type UnlockRepository struct {
	pool *pgxpool.Pool
}

// NewUnlockRepository creates a new unlock repository
func NewUnlockRepository(pool *pgxpool.Pool) *UnlockRepository {
	return &UnlockRepository{pool: pool}
}

// LoadUnlocked returns all persisted keys in unlock order.
func (r *UnlockRepository) LoadUnlocked(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT region_key
		FROM region_unlocks
		ORDER BY unlocked_at, region_key
	`)
	if err != nil {
		return nil, fmt.Errorf("loading unlocked regions: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0, 16)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning unlocked region: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating unlocked regions: %w", err)
	}
	return keys, nil
}

// SaveUnlocked replaces the persisted set with keys. Existing rows keep
// their original unlocked_at.
func (r *UnlockRepository) SaveUnlocked(ctx context.Context, keys []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// nil encodes as NULL, which would match no rows.
	if keys == nil {
		keys = []string{}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM region_unlocks WHERE NOT (region_key = ANY($1))`, keys); err != nil {
		return fmt.Errorf("pruning unlocked regions: %w", err)
	}

	if len(keys) > 0 {
		batch := &pgx.Batch{}
		for _, key := range keys {
			batch.Queue(`INSERT INTO region_unlocks (region_key) VALUES ($1) ON CONFLICT (region_key) DO NOTHING`, key)
		}
		br := tx.SendBatch(ctx, batch)
		for range keys {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("insert unlocked region: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
