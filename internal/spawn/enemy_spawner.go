package spawn

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/model"
)

// StatResolver resolves merged enemy stats. Implemented by *data.Resolver.
type StatResolver interface {
	Resolve(kind model.EnemyKind, instance *config.EnemyOverride, elite bool) (model.EnemyStats, error)
}

// EnemySpawner creates hostile entities in groups or as bosses.
type EnemySpawner struct {
	entities    *Entities
	layout      Layout
	resolver    StatResolver
	pop         config.PopulationConfig
	eliteChance float64
	rng         *rand.Rand

	groupSeq int
	waveSeq  int
}

// NewEnemySpawner creates enemy spawner.
func NewEnemySpawner(entities *Entities, layout Layout, resolver StatResolver, pop config.PopulationConfig, elite config.EliteConfig, rng *rand.Rand) *EnemySpawner {
	return &EnemySpawner{
		entities:    entities,
		layout:      layout,
		resolver:    resolver,
		pop:         pop,
		eliteChance: elite.Chance,
		rng:         rng,
	}
}

// SpawnEnemyGroup spawns size enemies of kind around center. Members share
// a fresh group ID and roll for elite individually. Returned enemies are
// already registered in the arena.
func (s *EnemySpawner) SpawnEnemyGroup(region model.GridPos, kind model.EnemyKind, size int, center model.Vec2, level int) []*model.Enemy {
	if size <= 0 {
		return nil
	}
	s.groupSeq++
	group := fmt.Sprintf("%s/%d", region.Key(), s.groupSeq)

	out := make([]*model.Enemy, 0, size)
	for i := range size {
		pos := s.scatter(center, i, size)
		elite := s.eliteChance > 0 && s.rng.Float64() < s.eliteChance
		e, err := s.create(region, kind, level, pos, elite)
		if err != nil {
			slog.Error("spawning enemy", "region", region, "kind", kind, "error", err)
			continue
		}
		e.GroupID = group
		e.WaveID = s.waveSeq
		e.UpgradeTimed = true
		s.entities.Enemies.Add(e)
		out = append(out, e)
	}

	slog.Debug("enemy group spawned",
		"region", region,
		"group", group,
		"kind", kind,
		"size", len(out))
	return out
}

// SpawnBoss spawns a single boss at pos. Bosses have no group, never roll
// elite and respawn on their static timer.
func (s *EnemySpawner) SpawnBoss(region model.GridPos, kind model.EnemyKind, pos model.Vec2, level int) *model.Enemy {
	e, err := s.create(region, kind, level, pos, false)
	if err != nil {
		slog.Error("spawning boss", "region", region, "kind", kind, "error", err)
		return nil
	}
	s.entities.Enemies.Add(e)

	slog.Info("boss spawned", "region", region, "kind", kind, "enemyID", e.ID, "level", level)
	return e
}

// PopulateRegion spawns count roster enemies into region as one wave of
// groups of up to GroupSize. Kinds cycle through the region roster.
func (s *EnemySpawner) PopulateRegion(region *model.Region, count int) []*model.Enemy {
	if count <= 0 {
		return nil
	}
	roster := region.Roster
	if len(roster) == 0 {
		roster = []model.EnemyKind{model.KindScout}
	}
	groupSize := max(s.pop.GroupSize, 1)

	s.waveSeq++
	var out []*model.Enemy
	for g := 0; count > 0; g++ {
		n := min(groupSize, count)
		kind := roster[(s.waveSeq+g)%len(roster)]
		center := placeIn(s.layout, s.rng, region.Pos, s.pop.GroupSpread)
		out = append(out, s.SpawnEnemyGroup(region.Pos, kind, n, center, region.Level)...)
		count -= n
	}
	return out
}

func (s *EnemySpawner) create(region model.GridPos, kind model.EnemyKind, level int, pos model.Vec2, elite bool) (*model.Enemy, error) {
	stats, err := s.resolver.Resolve(kind, nil, elite)
	if err != nil {
		return nil, fmt.Errorf("resolving %s stats: %w", kind, err)
	}
	e := &model.Enemy{
		ID:       s.entities.IDs.NextEnemyID(),
		Kind:     kind,
		Level:    max(level, 1),
		Region:   region,
		Stats:    stats,
		Elite:    elite,
		Health:   stats.Health,
		Position: pos,
		Spawn:    pos,
	}
	e.AI.Reset()
	return e, nil
}

// scatter places member i of n evenly on a ring of GroupSpread around
// center, falling back to center when the ring point is not walkable.
func (s *EnemySpawner) scatter(center model.Vec2, i, n int) model.Vec2 {
	if n == 1 || s.pop.GroupSpread <= 0 {
		return center
	}
	angle := 2 * math.Pi * float64(i) / float64(n)
	p := center.Add(model.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(s.pop.GroupSpread))
	if !s.layout.CanOccupy(p) {
		return center
	}
	return p
}
