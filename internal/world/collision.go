package world

import "github.com/udisondev/islesim/internal/model"

// rebuild regenerates zones and blocks from scratch. Caller holds g.mu.
func (g *Grid) rebuild() {
	zones := make([]model.Zone, 0, len(g.regions)+len(g.bridges))
	blocks := make([]model.Block, 0, len(g.regions)*8)

	for _, r := range g.regions {
		if !r.Unlocked {
			blocks = append(blocks, model.Block{Rect: r.Bounds(), Region: r.Pos})
			continue
		}
		zones = append(zones, model.Zone{Rect: g.playable(r), Kind: model.ZoneRegion, Region: r.Pos})
		for _, s := range sides {
			open := g.hasOpening(r, s)
			for _, wall := range g.wallStrips(r, s, open) {
				blocks = append(blocks, model.Block{Rect: wall, Region: r.Pos})
			}
			if open {
				zones = append(zones, model.Zone{Rect: g.gapRect(r, s), Kind: model.ZoneRegion, Region: r.Pos})
			}
		}
	}

	for _, b := range g.bridges {
		from := g.regionLocked(b.From.X, b.From.Y)
		to := g.regionLocked(b.To.X, b.To.Y)
		if from.Unlocked || to.Unlocked {
			zones = append(zones, model.Zone{Rect: b.Rect, Kind: model.ZoneBridge, Region: b.From})
		}
	}

	g.zones = zones
	g.blocks = blocks
}

// wallStrips returns the wall rectangles along side s, split around the
// edge gap when open.
func (g *Grid) wallStrips(r *model.Region, s side, open bool) []model.Rect {
	b := r.Bounds()
	t := g.cfg.WallThickness
	if t <= 0 {
		return nil
	}

	var strip model.Rect
	switch s {
	case sideNorth:
		strip = model.Rect{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MinY + t}
	case sideSouth:
		strip = model.Rect{MinX: b.MinX, MinY: b.MaxY - t, MaxX: b.MaxX, MaxY: b.MaxY}
	case sideWest:
		strip = model.Rect{MinX: b.MinX, MinY: b.MinY, MaxX: b.MinX + t, MaxY: b.MaxY}
	case sideEast:
		strip = model.Rect{MinX: b.MaxX - t, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
	}
	if !open {
		return []model.Rect{strip}
	}

	lo, hi := g.gapSpan()
	first, second := strip, strip
	if s == sideNorth || s == sideSouth {
		first.MaxX = b.MinX + lo
		second.MinX = b.MinX + hi
	} else {
		first.MaxY = b.MinY + lo
		second.MinY = b.MinY + hi
	}
	return []model.Rect{first, second}
}

// gapRect returns the opening cut into the wall along side s.
func (g *Grid) gapRect(r *model.Region, s side) model.Rect {
	b := r.Bounds()
	t := g.cfg.WallThickness
	lo, hi := g.gapSpan()
	switch s {
	case sideNorth:
		return model.Rect{MinX: b.MinX + lo, MinY: b.MinY, MaxX: b.MinX + hi, MaxY: b.MinY + t}
	case sideSouth:
		return model.Rect{MinX: b.MinX + lo, MinY: b.MaxY - t, MaxX: b.MinX + hi, MaxY: b.MaxY}
	case sideWest:
		return model.Rect{MinX: b.MinX, MinY: b.MinY + lo, MaxX: b.MinX + t, MaxY: b.MinY + hi}
	default:
		return model.Rect{MinX: b.MaxX - t, MinY: b.MinY + lo, MaxX: b.MaxX, MaxY: b.MinY + hi}
	}
}

// IsWalkable reports whether p lies in any walkable zone, falling back to
// the biome checker for the open world.
func (g *Grid) IsWalkable(p model.Vec2) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.walkableLocked(p)
}

// IsBlocked reports whether p lies in any obstruction block.
func (g *Grid) IsBlocked(p model.Vec2) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.blockedLocked(p)
}

// CanOccupy reports whether an entity may stand at p: walkable and not
// blocked.
func (g *Grid) CanOccupy(p model.Vec2) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.walkableLocked(p) && !g.blockedLocked(p)
}

func (g *Grid) walkableLocked(p model.Vec2) bool {
	for i := range g.zones {
		if g.zones[i].Rect.Contains(p) {
			return true
		}
	}
	return g.biome != nil && g.biome.IsOpenWorldWalkable(p)
}

func (g *Grid) blockedLocked(p model.Vec2) bool {
	for i := range g.blocks {
		if g.blocks[i].Rect.Contains(p) {
			return true
		}
	}
	return false
}

// Zones returns a snapshot of the walkable zones.
func (g *Grid) Zones() []model.Zone {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]model.Zone, len(g.zones))
	copy(out, g.zones)
	return out
}

// Blocks returns a snapshot of the obstruction blocks.
func (g *Grid) Blocks() []model.Block {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]model.Block, len(g.blocks))
	copy(out, g.blocks)
	return out
}
