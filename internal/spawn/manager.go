package spawn

import (
	"cmp"
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/model"
)

// merchantOffset places the home NPC next to the hero.
var merchantOffset = model.Vec2{X: 64, Y: 0}

// Orchestrator owns the four sub-spawners and keeps every unlocked region
// populated to its upgrade target.
type Orchestrator struct {
	layout    Layout
	upgrades  UpgradeProvider
	entities  *Entities
	scheduler *Scheduler
	pop       config.PopulationConfig

	enemies   *EnemySpawner
	resources *ResourceSpawner
	drops     *DropSpawner
	props     *PropSpawner

	hero        *model.Hero
	started     bool
	initialized map[model.GridPos]bool
}

// NewOrchestrator creates orchestrator and its sub-spawners. nil upgrades
// uses BaseSlotTarget for every region.
func NewOrchestrator(
	cfg config.Simulation,
	layout Layout,
	entities *Entities,
	resolver StatResolver,
	upgrades UpgradeProvider,
	scheduler *Scheduler,
	rng *rand.Rand,
) *Orchestrator {
	props := NewPropSpawner(entities)
	return &Orchestrator{
		layout:      layout,
		upgrades:    upgrades,
		entities:    entities,
		scheduler:   scheduler,
		pop:         cfg.Population,
		enemies:     NewEnemySpawner(entities, layout, resolver, cfg.Population, cfg.Elite, rng),
		resources:   NewResourceSpawner(entities, layout, props, cfg.Population, rng),
		drops:       NewDropSpawner(entities),
		props:       props,
		initialized: make(map[model.GridPos]bool),
	}
}

// Start places the hero and the home merchant and initializes every
// unlocked region. A second call is a no-op and returns false.
func (o *Orchestrator) Start(ctx context.Context) bool {
	if o.started {
		return false
	}
	o.started = true

	home := o.layout.Home()
	o.hero = &model.Hero{
		ID:       o.entities.IDs.NextHeroID(),
		Position: home.Center(),
		Alive:    true,
	}
	o.props.SpawnProp("merchant", home.Center().Add(merchantOffset), home.Pos)

	regions := 0
	for _, r := range o.layout.Regions() {
		if r.Unlocked && o.InitializeRegion(r.Pos.X, r.Pos.Y) {
			regions++
		}
	}

	slog.InfoContext(ctx, "spawn orchestrator started",
		"heroID", o.hero.ID,
		"regions", regions,
		"enemies", o.entities.Enemies.Len(),
		"resources", o.entities.Resources.Len(),
		"props", o.entities.Props.Len())
	return true
}

// Started reports whether Start ran.
func (o *Orchestrator) Started() bool { return o.started }

// Hero returns the hero placed by Start, nil before Start.
func (o *Orchestrator) Hero() *model.Hero { return o.hero }

// InitializeRegion spawns the initial allotment of an unlocked region by
// category. A region that was already initialized is refreshed instead.
// Returns false for unknown or locked regions.
func (o *Orchestrator) InitializeRegion(gx, gy int) bool {
	region, ok := o.layout.Region(gx, gy)
	if !ok || !region.Unlocked {
		return false
	}
	if o.initialized[region.Pos] {
		o.RefreshRegion(gx, gy)
		return true
	}
	o.initialized[region.Pos] = true

	target := o.slotTarget(gx, gy)
	switch region.Category {
	case model.CategoryHome:
		o.resources.Decorate(region.Pos)
	case model.CategoryResource:
		o.resources.PopulateBiome(region, target, true)
	case model.CategoryEnemy:
		o.enemies.PopulateRegion(region, target)
	case model.CategoryBoss:
		o.enemies.SpawnBoss(region.Pos, region.Boss, region.Center(), region.Level+2)
		o.enemies.PopulateRegion(region, target)
	}

	slog.Info("region initialized",
		"gridX", gx,
		"gridY", gy,
		"category", region.Category,
		"target", target)
	return true
}

// RefreshRegion reconciles the region's population with its current slot
// target: spawns the shortfall or removes the excess, dead entities first,
// then highest IDs. Dead entities count as population until removed.
func (o *Orchestrator) RefreshRegion(gx, gy int) (added, removed int) {
	region, ok := o.layout.Region(gx, gy)
	if !ok || !o.initialized[region.Pos] {
		return 0, 0
	}
	target := o.slotTarget(gx, gy)

	switch region.Category {
	case model.CategoryEnemy, model.CategoryBoss:
		added, removed = o.reconcileEnemies(region, target)
	case model.CategoryResource:
		added, removed = o.reconcileResources(region, target)
	}

	if added > 0 || removed > 0 {
		slog.Info("region population reconciled",
			"gridX", gx,
			"gridY", gy,
			"target", target,
			"added", added,
			"removed", removed)
	}
	return added, removed
}

// UpdateRegionRespawnTimers rescales running timers of region-owned
// entities to the region's current respawn duration. Returns how many
// timers changed.
func (o *Orchestrator) UpdateRegionRespawnTimers(gx, gy int) int {
	pos := model.GridPos{X: gx, Y: gy}
	n := 0
	for _, e := range o.entities.Enemies.ByRegion(pos) {
		if e.Dead && e.Timer != nil && e.UpgradeTimed {
			o.scheduler.Rescale(e.Timer, o.scheduler.EnemyDuration(e))
			n++
		}
	}
	for _, r := range o.entities.Resources.ByRegion(pos) {
		if r.Depleted && r.Timer != nil {
			o.scheduler.Rescale(r.Timer, o.scheduler.ResourceDuration(r))
			n++
		}
	}
	if n > 0 {
		slog.Debug("respawn timers rescaled", "gridX", gx, "gridY", gy, "timers", n)
	}
	return n
}

// Tick is the between-tick hook. Population changes are event driven, so
// there is nothing to do per tick.
func (o *Orchestrator) Tick(float64) {}

// SpawnDrop delegates to the drop spawner.
func (o *Orchestrator) SpawnDrop(itemID string, amount int, pos model.Vec2, region model.GridPos, dropperID uint32) *model.DroppedItem {
	return o.drops.SpawnDrop(itemID, amount, pos, region, dropperID)
}

// SpawnCraftedItem delegates to the drop spawner.
func (o *Orchestrator) SpawnCraftedItem(itemID string, amount int, pos model.Vec2, region model.GridPos) *model.DroppedItem {
	return o.drops.SpawnCraftedItem(itemID, amount, pos, region)
}

// SpawnEnemyGroup delegates to the enemy spawner.
func (o *Orchestrator) SpawnEnemyGroup(region model.GridPos, kind model.EnemyKind, size int, center model.Vec2, level int) []*model.Enemy {
	return o.enemies.SpawnEnemyGroup(region, kind, size, center, level)
}

// SpawnBoss delegates to the enemy spawner.
func (o *Orchestrator) SpawnBoss(region model.GridPos, kind model.EnemyKind, pos model.Vec2, level int) *model.Enemy {
	return o.enemies.SpawnBoss(region, kind, pos, level)
}

// PopulateBiome delegates to the resource spawner.
func (o *Orchestrator) PopulateBiome(region *model.Region, nodes int) []*model.Resource {
	return o.resources.PopulateBiome(region, nodes, true)
}

// SpawnProp delegates to the prop spawner.
func (o *Orchestrator) SpawnProp(kind string, pos model.Vec2, region model.GridPos) *model.Prop {
	return o.props.SpawnProp(kind, pos, region)
}

// Drops returns the drop spawner.
func (o *Orchestrator) Drops() *DropSpawner { return o.drops }

func (o *Orchestrator) slotTarget(gx, gy int) int {
	if o.upgrades == nil {
		return o.pop.BaseSlotTarget
	}
	return max(o.upgrades.RegionUpgrade(gx, gy).SlotTarget, 0)
}

func (o *Orchestrator) reconcileEnemies(region *model.Region, target int) (added, removed int) {
	var pool []*model.Enemy
	for _, e := range o.entities.Enemies.ByRegion(region.Pos) {
		if e.UpgradeTimed {
			pool = append(pool, e)
		}
	}

	if len(pool) < target {
		return len(o.enemies.PopulateRegion(region, target-len(pool))), 0
	}

	slices.SortFunc(pool, func(a, b *model.Enemy) int {
		return removalOrder(a.Dead, b.Dead, a.ID, b.ID)
	})
	for _, e := range pool[:len(pool)-target] {
		o.scheduler.Cancel(e.ID)
		o.entities.Enemies.Remove(e.ID)
		removed++
	}
	return 0, removed
}

func (o *Orchestrator) reconcileResources(region *model.Region, target int) (added, removed int) {
	pool := o.entities.Resources.ByRegion(region.Pos)
	if len(pool) < target {
		return len(o.resources.SpawnNodes(region.Pos, target-len(pool))), 0
	}

	slices.SortFunc(pool, func(a, b *model.Resource) int {
		return removalOrder(a.Depleted, b.Depleted, a.ID, b.ID)
	})
	for _, r := range pool[:len(pool)-target] {
		o.scheduler.Cancel(r.ID)
		o.entities.Resources.Remove(r.ID)
		removed++
	}
	return 0, removed
}

// removalOrder sorts inactive entities first, then by descending ID.
func removalOrder(aInactive, bInactive bool, aID, bID uint32) int {
	if aInactive != bInactive {
		if aInactive {
			return -1
		}
		return 1
	}
	return cmp.Compare(bID, aID)
}
