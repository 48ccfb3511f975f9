package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/model"
)

func TestResolver_LayerOrder(t *testing.T) {
	overrides := map[string]config.EnemyOverride{
		"raptor": {Speed: f64(200), Damage: f64(11)},
	}
	r, err := NewResolver(overrides, config.DefaultSimulation().Elite)
	require.NoError(t, err)

	t.Run("base layer fills unset kind fields", func(t *testing.T) {
		stats, err := r.Resolve(model.KindScout, nil, false)
		require.NoError(t, err)
		assert.Equal(t, baseStats.AttackRange, stats.AttackRange)
		assert.Equal(t, baseStats.LeashDistance, stats.LeashDistance)
		assert.Equal(t, 40.0, stats.Health, "kind layer wins over base")
	})

	t.Run("config override wins over kind layer", func(t *testing.T) {
		stats, err := r.Resolve(model.KindRaptor, nil, false)
		require.NoError(t, err)
		assert.Equal(t, 200.0, stats.Speed)
		assert.Equal(t, 11.0, stats.Damage)
		assert.Equal(t, 65.0, stats.Health, "untouched kind field survives")
		assert.True(t, stats.PackAggro)
	})

	t.Run("instance override wins over everything", func(t *testing.T) {
		stats, err := r.Resolve(model.KindRaptor, &config.EnemyOverride{Speed: f64(10), PackAggro: boolp(false)}, false)
		require.NoError(t, err)
		assert.Equal(t, 10.0, stats.Speed)
		assert.False(t, stats.PackAggro)
	})

	t.Run("instance override does not leak into cache", func(t *testing.T) {
		stats, err := r.Resolve(model.KindRaptor, nil, false)
		require.NoError(t, err)
		assert.Equal(t, 200.0, stats.Speed)
	})
}

func TestResolver_UnknownOverrideKind(t *testing.T) {
	_, err := NewResolver(map[string]config.EnemyOverride{"dragon": {}}, config.EliteConfig{})
	assert.Error(t, err)
}

func TestResolver_UnknownKind(t *testing.T) {
	r, err := NewResolver(nil, config.EliteConfig{})
	require.NoError(t, err)
	_, err = r.Resolve(model.KindNone, nil, false)
	assert.Error(t, err)
}

func TestResolver_EliteDeterministic(t *testing.T) {
	elite := config.EliteConfig{Health: 2.5, Damage: 1.5, XP: 3, Loot: 2}
	r, err := NewResolver(nil, elite)
	require.NoError(t, err)

	base, err := r.Resolve(model.KindBrute, nil, false)
	require.NoError(t, err)

	// Interleave plain and elite resolutions: elite result never depends on order.
	for range 5 {
		_, err := r.Resolve(model.KindScout, nil, true)
		require.NoError(t, err)

		got, err := r.Resolve(model.KindBrute, nil, true)
		require.NoError(t, err)

		assert.Equal(t, base.Health*2.5, got.Health)
		assert.Equal(t, base.Damage*1.5, got.Damage)
		assert.Equal(t, base.XPReward*3, got.XPReward)
		assert.Equal(t, base.LootMultiplier*2, got.LootMultiplier)
	}
}

func TestApplyElite_ZeroFactorsAreIdentity(t *testing.T) {
	stats := model.EnemyStats{Health: 10, Damage: 2, XPReward: 7, LootMultiplier: 1}
	assert.Equal(t, stats, ApplyElite(stats, config.EliteConfig{}))
}

func TestLootTables_ReferencedByKinds(t *testing.T) {
	tables := LootTables()
	r, err := NewResolver(nil, config.EliteConfig{})
	require.NoError(t, err)

	for kind := range enemyDefs {
		stats, err := r.Resolve(kind, nil, false)
		require.NoError(t, err)
		assert.Contains(t, tables, stats.LootTableID, "kind %s", kind)
	}
}
