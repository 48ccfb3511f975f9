package spawn

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/islesim/internal/config"
	"github.com/udisondev/islesim/internal/model"
)

// decorationKinds are the static props scattered over populated regions.
var decorationKinds = []string{"boulder", "fern", "stump", "flowers"}

// resourceMargin keeps nodes and decorations off the walls.
const resourceMargin = 32

// ResourceSpawner populates region biomes: harvestable nodes plus
// decorations.
type ResourceSpawner struct {
	entities *Entities
	layout   Layout
	props    *PropSpawner
	pop      config.PopulationConfig
	rng      *rand.Rand
}

// NewResourceSpawner creates resource spawner. Decorations go through props.
func NewResourceSpawner(entities *Entities, layout Layout, props *PropSpawner, pop config.PopulationConfig, rng *rand.Rand) *ResourceSpawner {
	return &ResourceSpawner{
		entities: entities,
		layout:   layout,
		props:    props,
		pop:      pop,
		rng:      rng,
	}
}

// PopulateBiome spawns nodes resource nodes in region and, when withDecor
// is set, the configured number of decorations.
func (s *ResourceSpawner) PopulateBiome(region *model.Region, nodes int, withDecor bool) []*model.Resource {
	out := s.SpawnNodes(region.Pos, nodes)
	decor := 0
	if withDecor {
		decor = s.Decorate(region.Pos)
	}
	slog.Debug("biome populated", "region", region.Pos, "nodes", len(out), "decorations", decor)
	return out
}

// SpawnNodes spawns n resource nodes of random kinds in region pos.
func (s *ResourceSpawner) SpawnNodes(pos model.GridPos, n int) []*model.Resource {
	if n <= 0 {
		return nil
	}
	amount := max(s.pop.ResourceAmount, 1)
	out := make([]*model.Resource, 0, n)
	for range n {
		r := &model.Resource{
			ID:        s.entities.IDs.NextResourceID(),
			Kind:      model.ResourceKind(s.rng.IntN(int(model.ResourceOre) + 1)),
			Region:    pos,
			Position:  placeIn(s.layout, s.rng, pos, resourceMargin),
			Amount:    amount,
			MaxAmount: amount,
		}
		s.entities.Resources.Add(r)
		out = append(out, r)
	}
	return out
}

// Decorate scatters DecorationsPerRegion props over region pos.
func (s *ResourceSpawner) Decorate(pos model.GridPos) int {
	n := max(s.pop.DecorationsPerRegion, 0)
	for range n {
		kind := decorationKinds[s.rng.IntN(len(decorationKinds))]
		s.props.SpawnProp(kind, placeIn(s.layout, s.rng, pos, resourceMargin), pos)
	}
	return n
}
