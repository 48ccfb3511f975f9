package world

import "github.com/udisondev/islesim/internal/model"

// side of a region footprint.
type side int

const (
	sideNorth side = iota // y = WorldY
	sideSouth             // y = WorldY + Height
	sideWest              // x = WorldX
	sideEast              // x = WorldX + Width
)

var sides = [...]side{sideNorth, sideSouth, sideWest, sideEast}

func (s side) offset() (dx, dy int) {
	switch s {
	case sideNorth:
		return 0, -1
	case sideSouth:
		return 0, 1
	case sideWest:
		return -1, 0
	default:
		return 1, 0
	}
}

// gapSpan returns the open interval along an edge, relative to the edge start.
func (g *Grid) gapSpan() (lo, hi float64) {
	cell := g.cfg.RegionSize / edgeCells
	return cell * gapFirstCell, cell * (gapLastCell + 1)
}

func (g *Grid) buildBridges() []model.Bridge {
	lo, hi := g.gapSpan()
	size := g.cfg.RegionSize
	reach := size + g.cfg.WaterGap + g.cfg.BridgeOverlap
	overlap := g.cfg.BridgeOverlap

	var bridges []model.Bridge
	for y := range g.cfg.Rows {
		for x := range g.cfg.Cols {
			from := g.regionLocked(x, y)
			if x+1 < g.cfg.Cols {
				bridges = append(bridges, model.Bridge{
					Rect: model.Rect{
						MinX: from.WorldX + size - overlap,
						MinY: from.WorldY + lo,
						MaxX: from.WorldX + reach,
						MaxY: from.WorldY + hi,
					},
					Orientation: model.Horizontal,
					From:        from.Pos,
					To:          model.GridPos{X: x + 1, Y: y},
				})
			}
			if y+1 < g.cfg.Rows {
				bridges = append(bridges, model.Bridge{
					Rect: model.Rect{
						MinX: from.WorldX + lo,
						MinY: from.WorldY + size - overlap,
						MaxX: from.WorldX + hi,
						MaxY: from.WorldY + reach,
					},
					Orientation: model.Vertical,
					From:        from.Pos,
					To:          model.GridPos{X: x, Y: y + 1},
				})
			}
		}
	}
	return bridges
}

// Bridges returns all bridges. Bridge geometry never changes, only whether
// it is walkable.
func (g *Grid) Bridges() []model.Bridge {
	out := make([]model.Bridge, len(g.bridges))
	copy(out, g.bridges)
	return out
}

// UnlockTrigger returns the locked far-end region when p stands on a bridge
// whose other end is unlocked. Bridges with both ends locked or both
// unlocked trigger nothing.
func (g *Grid) UnlockTrigger(p model.Vec2) (*model.Region, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, b := range g.bridges {
		if !b.Rect.Contains(p) {
			continue
		}
		from := g.regionLocked(b.From.X, b.From.Y)
		to := g.regionLocked(b.To.X, b.To.Y)
		if from.Unlocked == to.Unlocked {
			continue
		}
		locked := from
		if from.Unlocked {
			locked = to
		}
		cp := *locked
		return &cp, true
	}
	return nil, false
}

// hasOpening reports whether side s of r leaves the edge gap open: a bridge
// meets it, or r is home and s faces out of the grid.
func (g *Grid) hasOpening(r *model.Region, s side) bool {
	dx, dy := s.offset()
	if g.regionLocked(r.Pos.X+dx, r.Pos.Y+dy) != nil {
		return true
	}
	return r.IsHome()
}
