package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/event"
	"github.com/udisondev/islesim/internal/model"
)

// Every region edge is split into edgeCells cells. Where a bridge or an
// open-world exit meets the edge, cells gapFirstCell..gapLastCell stay open.
const (
	edgeCells    = 8
	gapFirstCell = 3
	gapLastCell  = 4
)

// Grid is the rows×cols island layout plus the collision index derived
// from it. Queries take a read lock; Unlock rebuilds the index under the
// write lock before returning.
type Grid struct {
	cfg   config.GridConfig
	store UnlockStore
	biome BiomeChecker
	pub   event.Publisher

	// saveMu orders Unlock calls so the store always receives the newest set.
	saveMu sync.Mutex

	mu          sync.RWMutex
	initialized bool
	regions     []*model.Region // row-major: y*cols + x
	bridges     []model.Bridge
	zones       []model.Zone
	blocks      []model.Block
}

// NewGrid builds region geometry and bridges from cfg. Every region starts
// locked except home; call Initialize to apply the persisted unlock set.
// nil store keeps unlocks in memory, nil publisher drops events, nil biome
// means nothing outside the zones is walkable.
func NewGrid(cfg config.GridConfig, store UnlockStore, biome BiomeChecker, pub event.Publisher) (*Grid, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("grid size %dx%d must be positive", cfg.Rows, cfg.Cols)
	}
	if cfg.RegionSize <= 0 {
		return nil, errors.New("region size must be positive")
	}
	if cfg.HomeX < 0 || cfg.HomeX >= cfg.Cols || cfg.HomeY < 0 || cfg.HomeY >= cfg.Rows {
		return nil, fmt.Errorf("home (%d,%d) outside %dx%d grid", cfg.HomeX, cfg.HomeY, cfg.Cols, cfg.Rows)
	}
	if store == nil {
		store = NewMemoryUnlockStore()
	}
	if pub == nil {
		pub = event.Nop{}
	}

	g := &Grid{
		cfg:     cfg,
		store:   store,
		biome:   biome,
		pub:     pub,
		regions: make([]*model.Region, cfg.Rows*cfg.Cols),
	}

	specs := make(map[model.GridPos]config.RegionSpec, len(cfg.Regions))
	for _, s := range cfg.Regions {
		specs[model.GridPos{X: s.X, Y: s.Y}] = s
	}

	stride := cfg.RegionSize + cfg.WaterGap
	for y := range cfg.Rows {
		for x := range cfg.Cols {
			pos := model.GridPos{X: x, Y: y}
			r, err := g.buildRegion(pos, specs[pos])
			if err != nil {
				return nil, fmt.Errorf("region %s: %w", pos, err)
			}
			r.WorldX = float64(x) * stride
			r.WorldY = float64(y) * stride
			r.Width = cfg.RegionSize
			r.Height = cfg.RegionSize
			g.regions[y*cfg.Cols+x] = r
		}
	}

	g.bridges = g.buildBridges()
	g.rebuild()
	return g, nil
}

func (g *Grid) buildRegion(pos model.GridPos, spec config.RegionSpec) (*model.Region, error) {
	home := pos.X == g.cfg.HomeX && pos.Y == g.cfg.HomeY
	dist := abs(pos.X-g.cfg.HomeX) + abs(pos.Y-g.cfg.HomeY)

	r := &model.Region{
		Pos:        pos,
		Name:       spec.Name,
		Kind:       model.RegionNormal,
		UnlockCost: spec.UnlockCost,
		Level:      spec.Level,
	}
	if r.Name == "" {
		r.Name = fmt.Sprintf("Region %d,%d", pos.X, pos.Y)
	}
	if r.UnlockCost == 0 {
		r.UnlockCost = g.cfg.BaseUnlockCost * dist
	}
	if r.Level == 0 {
		r.Level = max(1, dist)
	}

	category, err := model.ParseRegionCategory(spec.Category)
	if err != nil {
		return nil, err
	}
	r.Category = category
	if home {
		r.Kind = model.RegionHome
		r.Category = model.CategoryHome
		r.Unlocked = true
		r.UnlockCost = 0
	}

	for _, name := range spec.Roster {
		kind, err := model.ParseEnemyKind(name)
		if err != nil {
			return nil, fmt.Errorf("roster: %w", err)
		}
		r.Roster = append(r.Roster, kind)
	}
	if spec.Boss != "" {
		kind, err := model.ParseEnemyKind(spec.Boss)
		if err != nil {
			return nil, fmt.Errorf("boss: %w", err)
		}
		r.Boss = kind
	}
	if r.Category == model.CategoryBoss && r.Boss == model.KindNone {
		return nil, errors.New("boss region without boss kind")
	}
	return r, nil
}

// Initialize applies the persisted unlock set and rebuilds the index.
// Unknown or out-of-range keys are skipped.
func (g *Grid) Initialize(ctx context.Context) error {
	keys, err := g.store.LoadUnlocked(ctx)
	if err != nil {
		return fmt.Errorf("loading unlocked regions: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, key := range keys {
		pos, err := model.ParseGridPos(key)
		if err != nil {
			slog.Warn("skipping unlock key", "key", key, "error", err)
			continue
		}
		r := g.regionLocked(pos.X, pos.Y)
		if r == nil {
			slog.Warn("skipping unlock key outside grid", "key", key)
			continue
		}
		r.Unlocked = true
	}
	g.rebuild()
	g.initialized = true

	slog.Info("world grid initialized",
		"rows", g.cfg.Rows,
		"cols", g.cfg.Cols,
		"unlocked", len(g.unlockedKeysLocked()),
		"bridges", len(g.bridges),
		"zones", len(g.zones),
		"blocks", len(g.blocks))
	return nil
}

// Rows returns grid row count.
func (g *Grid) Rows() int { return g.cfg.Rows }

// Cols returns grid column count.
func (g *Grid) Cols() int { return g.cfg.Cols }

// Config returns grid configuration.
func (g *Grid) Config() config.GridConfig { return g.cfg }

// Region returns a copy of the region at (gx, gy).
func (g *Grid) Region(gx, gy int) (*model.Region, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r := g.regionLocked(gx, gy)
	if r == nil {
		return nil, false
	}
	cp := *r
	return &cp, true
}

// Home returns a copy of the home region.
func (g *Grid) Home() *model.Region {
	r, _ := g.Region(g.cfg.HomeX, g.cfg.HomeY)
	return r
}

// Regions returns copies of all regions in row-major order.
func (g *Grid) Regions() []model.Region {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]model.Region, len(g.regions))
	for i, r := range g.regions {
		out[i] = *r
	}
	return out
}

// IsUnlocked reports whether region (gx, gy) exists and is unlocked.
func (g *Grid) IsUnlocked(gx, gy int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r := g.regionLocked(gx, gy)
	return r != nil && r.Unlocked
}

// Unlock flips region (gx, gy) to unlocked, persists the unlock set,
// rebuilds the collision index and publishes RegionUnlocked.
// Returns false before Initialize, or if the region is out of range or
// already unlocked. A persistence failure is logged; the unlock stands.
func (g *Grid) Unlock(ctx context.Context, gx, gy int) bool {
	g.saveMu.Lock()
	defer g.saveMu.Unlock()

	g.mu.Lock()
	if !g.initialized {
		g.mu.Unlock()
		slog.Warn("unlock before grid initialization", "gridX", gx, "gridY", gy)
		return false
	}
	r := g.regionLocked(gx, gy)
	if r == nil || r.Unlocked {
		g.mu.Unlock()
		return false
	}
	r.Unlocked = true
	g.rebuild()
	keys := g.unlockedKeysLocked()
	snapshot := *r
	g.mu.Unlock()

	if err := g.store.SaveUnlocked(ctx, keys); err != nil {
		slog.Warn("persisting unlocked regions", "gridX", gx, "gridY", gy, "error", err)
	}

	slog.Info("region unlocked", "gridX", gx, "gridY", gy, "name", snapshot.Name, "category", snapshot.Category)
	g.pub.Publish(event.RegionUnlocked{
		Region:   snapshot.Pos,
		Name:     snapshot.Name,
		Category: snapshot.Category.String(),
		Cost:     snapshot.UnlockCost,
	})
	return true
}

// UnlockedKeys returns "gx,gy" keys of unlocked regions in row-major order.
func (g *Grid) UnlockedKeys() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.unlockedKeysLocked()
}

// RegionAt returns a copy of the region whose footprint contains p.
// Points in the water gaps belong to no region.
func (g *Grid) RegionAt(p model.Vec2) (*model.Region, bool) {
	stride := g.cfg.RegionSize + g.cfg.WaterGap
	if p.X < 0 || p.Y < 0 {
		return nil, false
	}
	gx := int(p.X / stride)
	gy := int(p.Y / stride)

	g.mu.RLock()
	defer g.mu.RUnlock()
	r := g.regionLocked(gx, gy)
	if r == nil || !r.Bounds().Contains(p) {
		return nil, false
	}
	cp := *r
	return &cp, true
}

// PlayableBounds returns the interior of region (gx, gy) inside its walls.
func (g *Grid) PlayableBounds(gx, gy int) (model.Rect, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r := g.regionLocked(gx, gy)
	if r == nil {
		return model.Rect{}, false
	}
	return g.playable(r), true
}

// WorldBounds returns the rectangle covering every region and gap.
func (g *Grid) WorldBounds() model.Rect {
	stride := g.cfg.RegionSize + g.cfg.WaterGap
	w := float64(g.cfg.Cols-1)*stride + g.cfg.RegionSize
	h := float64(g.cfg.Rows-1)*stride + g.cfg.RegionSize
	return model.NewRect(0, 0, w, h)
}

func (g *Grid) playable(r *model.Region) model.Rect {
	return r.Bounds().Inset(g.cfg.WallThickness)
}

func (g *Grid) regionLocked(gx, gy int) *model.Region {
	if gx < 0 || gx >= g.cfg.Cols || gy < 0 || gy >= g.cfg.Rows {
		return nil
	}
	return g.regions[gy*g.cfg.Cols+gx]
}

func (g *Grid) unlockedKeysLocked() []string {
	keys := make([]string, 0, len(g.regions))
	for _, r := range g.regions {
		if r.Unlocked {
			keys = append(keys, r.Pos.Key())
		}
	}
	return keys
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
