// Package sim wires the world grid, AI driver, spawn orchestrator and
// respawn scheduler into one fixed-step simulation.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/udisondev/islesim/internal/ai"
	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/data"
	"github.com/udisondev/islesim/internal/event"
	"github.com/udisondev/islesim/internal/loot"
	"github.com/udisondev/islesim/internal/metrics"
	"github.com/udisondev/islesim/internal/model"
	"github.com/udisondev/islesim/internal/spawn"
	"github.com/udisondev/islesim/internal/upgrade"
	"github.com/udisondev/islesim/internal/world"
)

// rng streams, one per component so adding a roll in one place does not
// shift the others.
const (
	streamAI uint64 = iota + 1
	streamSpawn
	streamRespawn
	streamLoot
)

// Options carries the optional collaborators. Zero value runs fully in
// memory with no biome, no event sink and no metrics.
type Options struct {
	Store     world.UnlockStore
	Biome     world.BiomeChecker
	Publisher event.Publisher
	Metrics   *metrics.Metrics
}

// Simulation owns the whole core. All methods are safe for concurrent use;
// they serialize on one mutex.
type Simulation struct {
	cfg     config.Simulation
	metrics *metrics.Metrics

	mu        sync.Mutex
	grid      *world.Grid
	entities  *spawn.Entities
	driver    *ai.Driver
	orch      *spawn.Orchestrator
	scheduler *spawn.Scheduler
	upgrades  *upgrade.Provider
	ticks     uint64
}

// New builds the simulation. The grid is not loaded until Start.
func New(cfg config.Simulation, opts Options) (*Simulation, error) {
	pub := opts.Publisher
	if pub == nil {
		pub = event.Nop{}
	}
	if opts.Metrics != nil {
		pub = opts.Metrics.Publisher(pub)
	}

	grid, err := world.NewGrid(cfg.Grid, opts.Store, opts.Biome, pub)
	if err != nil {
		return nil, fmt.Errorf("building world grid: %w", err)
	}
	resolver, err := data.NewResolver(cfg.Enemies, cfg.Elite)
	if err != nil {
		return nil, fmt.Errorf("resolving enemy stats: %w", err)
	}

	entities := spawn.NewEntities()
	upgrades := upgrade.NewProvider(cfg.Upgrades, cfg.Population, cfg.Respawn)
	scheduler := spawn.NewScheduler(entities, upgrades, pub, cfg.Respawn, newRNG(cfg.Seed, streamRespawn))
	orch := spawn.NewOrchestrator(cfg, grid, entities, resolver, upgrades, scheduler, newRNG(cfg.Seed, streamSpawn))
	generator := loot.NewGenerator(data.LootTables(), cfg.Loot, newRNG(cfg.Seed, streamLoot))
	scheduler.SetRewardHandler(spawn.NewLootRewards(generator, orch.Drops()))

	return &Simulation{
		cfg:       cfg,
		metrics:   opts.Metrics,
		grid:      grid,
		entities:  entities,
		driver:    ai.NewDriver(cfg.AI, entities.Enemies, grid, pub, newRNG(cfg.Seed, streamAI)),
		orch:      orch,
		scheduler: scheduler,
		upgrades:  upgrades,
	}, nil
}

func newRNG(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// Start loads persisted unlocks and populates every unlocked region.
// A second call is a no-op.
func (s *Simulation) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.orch.Started() {
		return nil
	}
	if err := s.grid.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing world grid: %w", err)
	}
	s.orch.Start(ctx)
	s.observe()
	return nil
}

// Step advances the simulation by dt seconds: AI first, then the
// orchestrator hook, then respawn timers. Does nothing before Start.
func (s *Simulation) Step(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.orch.Started() {
		return
	}
	start := time.Now()

	hero := *s.orch.Hero()
	s.driver.Tick(dt, hero)
	s.orch.Tick(dt)
	s.scheduler.Tick(dt)
	s.ticks++

	if s.metrics != nil {
		s.metrics.ObserveTick(time.Since(start))
	}
	s.observe()
}

// Run steps the simulation every TickInterval until ctx is cancelled.
// Each step advances by the fixed interval, not the measured wall time.
func (s *Simulation) Run(ctx context.Context) error {
	interval := s.cfg.TickInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("simulation loop started", "interval", interval)

	dt := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation loop stopping", "ticks", s.Ticks())
			return ctx.Err()
		case <-ticker.C:
			s.Step(dt)
		}
	}
}

// Ticks returns the number of steps executed.
func (s *Simulation) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Unlock unlocks region (gx, gy) and populates it. Returns false before
// Start, or when the region is unknown or already unlocked.
func (s *Simulation) Unlock(ctx context.Context, gx, gy int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.grid.Unlock(ctx, gx, gy) {
		return false
	}
	if s.orch.Started() {
		s.orch.InitializeRegion(gx, gy)
	}
	return true
}

// PurchaseUpgrade raises an unlocked region one tier, then reconciles its
// population and rescales its running timers. Currency is the caller's
// concern; the cost is returned via NextCost beforehand.
func (s *Simulation) PurchaseUpgrade(gx, gy int) (model.Upgrade, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.grid.IsUnlocked(gx, gy) {
		return model.Upgrade{}, false
	}
	up, ok := s.upgrades.Purchase(gx, gy)
	if !ok {
		return model.Upgrade{}, false
	}
	s.orch.RefreshRegion(gx, gy)
	s.orch.UpdateRegionRespawnTimers(gx, gy)
	return up, true
}

// NextUpgradeCost returns the cost of the next tier of region (gx, gy).
func (s *Simulation) NextUpgradeCost(gx, gy int) (int, bool) {
	return s.upgrades.NextCost(gx, gy)
}

// DamageEnemy applies amount of damage from attackerID to enemy id. The
// enemy turns on its attacker; at zero health it dies and drops loot.
// Returns ok=false for unknown or dead enemies.
func (s *Simulation) DamageEnemy(id uint32, amount float64, attackerID uint32) (killed, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entities.Enemies.Get(id)
	if !found || e.Dead || !(amount > 0) {
		return false, false
	}
	e.Health -= amount
	if e.Health <= 0 {
		return s.scheduler.HandleDeath(e, attackerID), true
	}
	s.driver.NotifyDamage(e, attackerID)
	return false, true
}

// Harvest takes up to amount from resource node id and returns how much
// was taken. The node depletes when it reaches zero.
func (s *Simulation) Harvest(id uint32, amount int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, found := s.entities.Resources.Get(id)
	if !found || r.Depleted || amount <= 0 {
		return 0, false
	}
	taken := min(amount, r.Amount)
	r.Amount -= taken
	if r.Amount <= 0 {
		s.scheduler.HandleDepletion(r)
	}
	return taken, true
}

// PickupDrop removes drop id from the ground.
func (s *Simulation) PickupDrop(id uint32) (model.DroppedItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.orch.Drops().Pickup(id)
	if !ok {
		return model.DroppedItem{}, false
	}
	return *d, true
}

// SetHeroPosition moves the hero. Returns false before Start.
func (s *Simulation) SetHeroPosition(p model.Vec2) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	hero := s.orch.Hero()
	if hero == nil {
		return false
	}
	hero.Position = p
	return true
}

// Hero returns a copy of the hero, false before Start.
func (s *Simulation) Hero() (model.Hero, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hero := s.orch.Hero()
	if hero == nil {
		return model.Hero{}, false
	}
	return *hero, true
}

// Enemy returns a copy of enemy id.
func (s *Simulation) Enemy(id uint32) (model.Enemy, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entities.Enemies.Get(id)
	if !ok {
		return model.Enemy{}, false
	}
	return *e, true
}

// RegionEnemies returns copies of the enemies owned by region (gx, gy).
func (s *Simulation) RegionEnemies(gx, gy int) []model.Enemy {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.entities.Enemies.ByRegion(model.GridPos{X: gx, Y: gy})
	out := make([]model.Enemy, 0, len(src))
	for _, e := range src {
		out = append(out, *e)
	}
	return out
}

// RegionResources returns copies of the resource nodes of region (gx, gy).
func (s *Simulation) RegionResources(gx, gy int) []model.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.entities.Resources.ByRegion(model.GridPos{X: gx, Y: gy})
	out := make([]model.Resource, 0, len(src))
	for _, r := range src {
		out = append(out, *r)
	}
	return out
}

// Drops returns copies of all item stacks on the ground.
func (s *Simulation) Drops() []model.DroppedItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.entities.Drops.All()
	out := make([]model.DroppedItem, 0, len(src))
	for _, d := range src {
		out = append(out, *d)
	}
	return out
}

// Grid exposes the world grid for spatial queries. The grid locks itself.
func (s *Simulation) Grid() *world.Grid {
	return s.grid
}

// Population counts entities by state.
func (s *Simulation) Population() metrics.Population {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.population()
}

func (s *Simulation) population() metrics.Population {
	var p metrics.Population
	s.entities.Enemies.Each(func(e *model.Enemy) bool {
		if e.Dead {
			p.EnemiesDead++
		} else {
			p.EnemiesAlive++
		}
		return true
	})
	s.entities.Resources.Each(func(r *model.Resource) bool {
		if r.Depleted {
			p.ResourcesDepleted++
		} else {
			p.ResourcesAvailable++
		}
		return true
	})
	p.Drops = s.entities.Drops.Len()
	p.PendingRespawns = s.scheduler.Pending()
	return p
}

func (s *Simulation) observe() {
	if s.metrics != nil {
		s.metrics.SetPopulation(s.population())
	}
}
