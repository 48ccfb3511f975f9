package data

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/model"
)

// Resolver merges enemy stat layers:
//
//	base defaults < built-in kind layer < config override < spawn instance override
//
// Kind-level results are cached; only instance overrides are merged per spawn.
type Resolver struct {
	byKind map[model.EnemyKind]model.EnemyStats
	elite  config.EliteConfig
}

// NewResolver builds the per-kind cache from the built-in table and the
// config overrides (keyed by kind name).
func NewResolver(overrides map[string]config.EnemyOverride, elite config.EliteConfig) (*Resolver, error) {
	r := &Resolver{
		byKind: make(map[model.EnemyKind]model.EnemyStats, len(enemyDefs)),
		elite:  elite,
	}

	for kind, layer := range enemyDefs {
		stats := baseStats
		applyLayer(&stats, layer)
		r.byKind[kind] = stats
	}

	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		kind, err := model.ParseEnemyKind(name)
		if err != nil {
			return nil, fmt.Errorf("enemy override: %w", err)
		}
		stats := r.byKind[kind]
		applyLayer(&stats, overrides[name])
		r.byKind[kind] = stats
	}

	slog.Debug("enemy stat resolver built", "kinds", len(r.byKind), "overrides", len(overrides))
	return r, nil
}

// Resolve returns merged stats for a kind. instance may be nil.
// Elite multipliers are applied last when elite is true.
func (r *Resolver) Resolve(kind model.EnemyKind, instance *config.EnemyOverride, elite bool) (model.EnemyStats, error) {
	stats, ok := r.byKind[kind]
	if !ok {
		return model.EnemyStats{}, fmt.Errorf("no stats for enemy kind %s", kind)
	}
	if instance != nil {
		applyLayer(&stats, *instance)
	}
	if elite {
		stats = ApplyElite(stats, r.elite)
	}
	return stats, nil
}

// Elite returns the elite multipliers in use.
func (r *Resolver) Elite() config.EliteConfig {
	return r.elite
}

// ApplyElite multiplies health, damage, xp and loot by the elite factors.
// Factors ≤ 0 are treated as 1.
func ApplyElite(stats model.EnemyStats, elite config.EliteConfig) model.EnemyStats {
	stats.Health *= factor(elite.Health)
	stats.Damage *= factor(elite.Damage)
	stats.XPReward = int(float64(stats.XPReward) * factor(elite.XP))
	stats.LootMultiplier *= factor(elite.Loot)
	return stats
}

// LootTables returns a copy of the built-in loot tables keyed by ID.
func LootTables() map[string]LootTable {
	tables := make(map[string]LootTable, len(lootDefs))
	for _, t := range lootDefs {
		tables[t.ID] = t
	}
	return tables
}

func factor(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

func applyLayer(s *model.EnemyStats, l config.EnemyOverride) {
	if l.Health != nil {
		s.Health = *l.Health
	}
	if l.Damage != nil {
		s.Damage = *l.Damage
	}
	if l.AttackRange != nil {
		s.AttackRange = *l.AttackRange
	}
	if l.AttackRate != nil {
		s.AttackRate = *l.AttackRate
	}
	if l.Speed != nil {
		s.Speed = *l.Speed
	}
	if l.AggroRange != nil {
		s.AggroRange = *l.AggroRange
	}
	if l.PatrolRadius != nil {
		s.PatrolRadius = *l.PatrolRadius
	}
	if l.LeashDistance != nil {
		s.LeashDistance = *l.LeashDistance
	}
	if l.XPReward != nil {
		s.XPReward = *l.XPReward
	}
	if l.LootTableID != nil {
		s.LootTableID = *l.LootTableID
	}
	if l.LootMultiplier != nil {
		s.LootMultiplier = *l.LootMultiplier
	}
	if l.PackAggro != nil {
		s.PackAggro = *l.PackAggro
	}
	if l.RespawnTime != nil {
		s.RespawnTime = *l.RespawnTime
	}
}
