package spawn

import (
	"math/rand/v2"

	"github.com/udisondev/islesim/internal/model"
	"github.com/udisondev/islesim/internal/world"
)

// Entities groups the arenas the spawners populate and the ID generator
// they draw from.
type Entities struct {
	Enemies   *world.Arena[*model.Enemy]
	Resources *world.Arena[*model.Resource]
	Drops     *world.Arena[*model.DroppedItem]
	Props     *world.Arena[*model.Prop]
	IDs       *world.ObjectIDGenerator
}

// NewEntities creates empty arenas.
func NewEntities() *Entities {
	return &Entities{
		Enemies:   world.NewArena[*model.Enemy](),
		Resources: world.NewArena[*model.Resource](),
		Drops:     world.NewArena[*model.DroppedItem](),
		Props:     world.NewArena[*model.Prop](),
		IDs:       world.NewObjectIDGenerator(),
	}
}

// Layout is the part of the world grid the spawners need.
// Implemented by *world.Grid.
type Layout interface {
	Region(gx, gy int) (*model.Region, bool)
	Regions() []model.Region
	Home() *model.Region
	PlayableBounds(gx, gy int) (model.Rect, bool)
	CanOccupy(p model.Vec2) bool
}

// placementAttempts bounds the search for a free random point.
const placementAttempts = 8

// randomPoint returns a uniformly random point inside r.
func randomPoint(rng *rand.Rand, r model.Rect) model.Vec2 {
	return model.Vec2{
		X: r.MinX + rng.Float64()*r.Width(),
		Y: r.MinY + rng.Float64()*r.Height(),
	}
}

// placeIn picks a free random point inside the playable area of region pos,
// kept margin units away from the walls. Falls back to the area centre.
func placeIn(layout Layout, rng *rand.Rand, pos model.GridPos, margin float64) model.Vec2 {
	bounds, ok := layout.PlayableBounds(pos.X, pos.Y)
	if !ok {
		return model.Vec2{}
	}
	area := bounds.Inset(margin)
	if area.Empty() {
		area = bounds
	}
	for range placementAttempts {
		p := randomPoint(rng, area)
		if layout.CanOccupy(p) {
			return p
		}
	}
	return area.Center()
}
