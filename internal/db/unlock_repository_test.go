//go:build integration

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlockRepository_RoundTrip(t *testing.T) {
	repo := NewUnlockRepository(setupTestDB(t))
	ctx := context.Background()

	keys, err := repo.LoadUnlocked(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, repo.SaveUnlocked(ctx, []string{"1,2", "2,2"}))
	keys, err = repo.LoadUnlocked(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1,2", "2,2"}, keys)

	require.NoError(t, repo.SaveUnlocked(ctx, []string{"1,2", "2,2", "1,1"}))
	keys, err = repo.LoadUnlocked(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1,2", "2,2", "1,1"}, keys)
}

func TestUnlockRepository_SaveReplaces(t *testing.T) {
	repo := NewUnlockRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveUnlocked(ctx, []string{"0,0", "1,2"}))
	require.NoError(t, repo.SaveUnlocked(ctx, []string{"1,2"}))

	keys, err := repo.LoadUnlocked(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1,2"}, keys)

	require.NoError(t, repo.SaveUnlocked(ctx, nil))
	keys, err = repo.LoadUnlocked(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestUnlockRepository_Idempotent(t *testing.T) {
	repo := NewUnlockRepository(setupTestDB(t))
	ctx := context.Background()

	for range 3 {
		require.NoError(t, repo.SaveUnlocked(ctx, []string{"1,2"}))
	}
	keys, err := repo.LoadUnlocked(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1,2"}, keys)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	dsn := testPool.Config().ConnString()
	version, err := RunMigrations(context.Background(), dsn)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
