package spawn

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/event"
	"github.com/udisondev/islesim/internal/model"
)

// UpgradeProvider exposes per-region progression. Re-queried on demand,
// never cached. Implemented by *upgrade.Provider.
type UpgradeProvider interface {
	RegionUpgrade(gx, gy int) model.Upgrade
}

// RewardHandler receives each defeated enemy exactly once.
type RewardHandler interface {
	HandleReward(e *model.Enemy, killerID uint32)
}

// Scheduler retires dead enemies and depleted resources and revives them
// when their timers run out. Timers live on the entities; the scheduler
// sweeps the arenas every tick.
type Scheduler struct {
	entities *Entities
	upgrades UpgradeProvider
	rewards  RewardHandler
	pub      event.Publisher
	cfg      config.RespawnConfig
	rng      *rand.Rand
}

// NewScheduler creates respawn scheduler. nil upgrades falls back to the
// configured durations and no auto-collect.
func NewScheduler(entities *Entities, upgrades UpgradeProvider, pub event.Publisher, cfg config.RespawnConfig, rng *rand.Rand) *Scheduler {
	if pub == nil {
		pub = event.Nop{}
	}
	return &Scheduler{
		entities: entities,
		upgrades: upgrades,
		pub:      pub,
		cfg:      cfg,
		rng:      rng,
	}
}

// SetRewardHandler sets the handler called once per death.
func (s *Scheduler) SetRewardHandler(h RewardHandler) {
	s.rewards = h
}

// HandleDeath freezes e, publishes EnemyDefeated, dispatches rewards and
// starts the respawn timer. Returns false if e was already dead.
func (s *Scheduler) HandleDeath(e *model.Enemy, killerID uint32) bool {
	if e.Dead {
		return false
	}
	duration := s.enemyDuration(e)

	e.Dead = true
	e.Health = 0
	e.AI.Target = 0
	e.Timer = model.NewRespawnTimer(duration)

	s.pub.Publish(event.EnemyDefeated{
		EnemyID:        e.ID,
		Kind:           e.Kind,
		Level:          e.Level,
		Elite:          e.Elite,
		Region:         e.Region,
		Position:       e.Position,
		XPReward:       e.Stats.XPReward,
		LootTableID:    e.Stats.LootTableID,
		LootMultiplier: e.Stats.LootMultiplier,
		KillerID:       killerID,
		RespawnIn:      duration,
	})
	if s.rewards != nil {
		s.rewards.HandleReward(e, killerID)
	}

	slog.Debug("enemy defeated",
		"enemyID", e.ID,
		"kind", e.Kind,
		"elite", e.Elite,
		"respawnIn", duration)
	return true
}

// HandleDepletion marks r depleted and starts its regrow timer. Returns
// false if r was already depleted.
func (s *Scheduler) HandleDepletion(r *model.Resource) bool {
	if r.Depleted {
		return false
	}
	duration := s.resourceDuration(r)

	r.Depleted = true
	r.Amount = 0
	r.Timer = model.NewRespawnTimer(duration)

	s.pub.Publish(event.ResourceDepleted{
		ResourceID: r.ID,
		Region:     r.Region,
		RespawnIn:  duration,
	})
	return true
}

// Tick advances every running timer by dt and revives entities whose
// timers elapsed.
func (s *Scheduler) Tick(dt float64) {
	var dueEnemies []*model.Enemy
	s.entities.Enemies.Each(func(e *model.Enemy) bool {
		if e.Dead && e.Timer != nil && e.Timer.Advance(dt) {
			dueEnemies = append(dueEnemies, e)
		}
		return true
	})
	var dueResources []*model.Resource
	s.entities.Resources.Each(func(r *model.Resource) bool {
		if r.Depleted && r.Timer != nil && r.Timer.Advance(dt) {
			dueResources = append(dueResources, r)
		}
		return true
	})

	for _, e := range dueEnemies {
		s.reviveEnemy(e)
	}
	for _, r := range dueResources {
		s.reviveResource(r)
	}
}

// Rescale changes a running timer's duration keeping its completion
// fraction.
func (s *Scheduler) Rescale(t *model.RespawnTimer, newTotal float64) {
	if t == nil {
		return
	}
	t.Rescale(newTotal)
}

// Cancel stops the timer of entity id. Returns false if no timer ran.
func (s *Scheduler) Cancel(id uint32) bool {
	if e, ok := s.entities.Enemies.Get(id); ok && e.Timer != nil {
		e.Timer = nil
		return true
	}
	if r, ok := s.entities.Resources.Get(id); ok && r.Timer != nil {
		r.Timer = nil
		return true
	}
	return false
}

// Pending returns the number of running timers.
func (s *Scheduler) Pending() int {
	n := 0
	s.entities.Enemies.Each(func(e *model.Enemy) bool {
		if e.Timer != nil {
			n++
		}
		return true
	})
	s.entities.Resources.Each(func(r *model.Resource) bool {
		if r.Timer != nil {
			n++
		}
		return true
	})
	return n
}

// EnemyDuration returns the respawn duration e would get now.
func (s *Scheduler) EnemyDuration(e *model.Enemy) float64 {
	return s.enemyDuration(e)
}

// ResourceDuration returns the regrow duration r would get now.
func (s *Scheduler) ResourceDuration(r *model.Resource) float64 {
	return s.resourceDuration(r)
}

func (s *Scheduler) enemyDuration(e *model.Enemy) float64 {
	if e.UpgradeTimed && s.upgrades != nil {
		if d := s.upgrades.RegionUpgrade(e.Region.X, e.Region.Y).RespawnSeconds; d > 0 {
			return d
		}
	}
	if e.Stats.RespawnTime > 0 {
		return e.Stats.RespawnTime
	}
	return s.cfg.BaseSeconds
}

func (s *Scheduler) resourceDuration(r *model.Resource) float64 {
	if s.upgrades != nil {
		if d := s.upgrades.RegionUpgrade(r.Region.X, r.Region.Y).RespawnSeconds; d > 0 {
			return d
		}
	}
	return s.cfg.ResourceSeconds
}

func (s *Scheduler) reviveEnemy(e *model.Enemy) {
	e.Dead = false
	e.Timer = nil
	e.Health = e.MaxHealth()
	e.Position = e.Spawn
	e.AI.Reset()

	s.pub.Publish(event.EnemyRespawned{
		EnemyID:  e.ID,
		Region:   e.Region,
		Position: e.Position,
	})
	slog.Debug("enemy respawned", "enemyID", e.ID, "kind", e.Kind, "region", e.Region)
}

func (s *Scheduler) reviveResource(r *model.Resource) {
	r.Depleted = false
	r.Timer = nil
	r.Amount = r.MaxAmount

	s.pub.Publish(event.ResourceRespawned{
		ResourceID: r.ID,
		Region:     r.Region,
	})

	if s.upgrades == nil || s.rng == nil {
		return
	}
	chance := s.upgrades.RegionUpgrade(r.Region.X, r.Region.Y).AutoCollectChance
	if chance <= 0 || s.rng.Float64() >= chance {
		return
	}
	s.pub.Publish(event.ResourceAutoCollected{
		ResourceID: r.ID,
		Region:     r.Region,
		ItemID:     r.Kind.YieldItem(),
		Amount:     r.Amount,
	})
	s.HandleDepletion(r)
}
