package spawn

import "github.com/udisondev/islesim/internal/model"

// PropSpawner places static props, decorations and NPCs.
type PropSpawner struct {
	entities *Entities
}

// NewPropSpawner creates prop spawner.
func NewPropSpawner(entities *Entities) *PropSpawner {
	return &PropSpawner{entities: entities}
}

// SpawnProp places a prop of kind at pos.
func (s *PropSpawner) SpawnProp(kind string, pos model.Vec2, region model.GridPos) *model.Prop {
	p := &model.Prop{
		ID:       s.entities.IDs.NextPropID(),
		Kind:     kind,
		Position: pos,
		Region:   region,
	}
	s.entities.Props.Add(p)
	return p
}
