package world

import (
	"slices"

	"github.com/udisondev/islesim/internal/model"
)

// Indexed is an entity the arena can store and index.
type Indexed interface {
	EntityID() uint32
	HomeRegion() model.GridPos
	GroupKey() string
	KindKey() string
}

// Arena stores entities by stable ID and keeps secondary indices by region,
// group and kind up to date on every Add and Remove. Iteration follows
// insertion order so ticks are deterministic.
//
// Arena is not safe for concurrent use; the simulation lock guards it.
type Arena[T Indexed] struct {
	byID     map[uint32]T
	order    []uint32
	byRegion map[model.GridPos][]uint32
	byGroup  map[string][]uint32
	byKind   map[string][]uint32
}

// NewArena creates an empty arena.
func NewArena[T Indexed]() *Arena[T] {
	return &Arena[T]{
		byID:     make(map[uint32]T),
		byRegion: make(map[model.GridPos][]uint32),
		byGroup:  make(map[string][]uint32),
		byKind:   make(map[string][]uint32),
	}
}

// Add registers v. Returns false if its ID is already present.
func (a *Arena[T]) Add(v T) bool {
	id := v.EntityID()
	if _, ok := a.byID[id]; ok {
		return false
	}
	a.byID[id] = v
	a.order = append(a.order, id)
	a.byRegion[v.HomeRegion()] = append(a.byRegion[v.HomeRegion()], id)
	if g := v.GroupKey(); g != "" {
		a.byGroup[g] = append(a.byGroup[g], id)
	}
	if k := v.KindKey(); k != "" {
		a.byKind[k] = append(a.byKind[k], id)
	}
	return true
}

// Remove unregisters id and drops it from every index.
func (a *Arena[T]) Remove(id uint32) (T, bool) {
	v, ok := a.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	delete(a.byID, id)
	a.order = deleteID(a.order, id)
	removeFromIndex(a.byRegion, v.HomeRegion(), id)
	if g := v.GroupKey(); g != "" {
		removeFromIndex(a.byGroup, g, id)
	}
	if k := v.KindKey(); k != "" {
		removeFromIndex(a.byKind, k, id)
	}
	return v, true
}

// Get returns the entity with id.
func (a *Arena[T]) Get(id uint32) (T, bool) {
	v, ok := a.byID[id]
	return v, ok
}

// Len returns number of stored entities.
func (a *Arena[T]) Len() int { return len(a.byID) }

// All returns every entity in insertion order.
func (a *Arena[T]) All() []T {
	return a.collect(a.order)
}

// ByRegion returns entities owned by region pos in insertion order.
func (a *Arena[T]) ByRegion(pos model.GridPos) []T {
	return a.collect(a.byRegion[pos])
}

// CountRegion returns number of entities owned by region pos.
func (a *Arena[T]) CountRegion(pos model.GridPos) int {
	return len(a.byRegion[pos])
}

// ByGroup returns members of group key. Empty key has no members.
func (a *Arena[T]) ByGroup(key string) []T {
	if key == "" {
		return nil
	}
	return a.collect(a.byGroup[key])
}

// ByKind returns entities of kind key.
func (a *Arena[T]) ByKind(key string) []T {
	return a.collect(a.byKind[key])
}

// Each calls fn for every entity in insertion order until fn returns false.
// fn must not add or remove entities.
func (a *Arena[T]) Each(fn func(T) bool) {
	for _, id := range a.order {
		if !fn(a.byID[id]) {
			return
		}
	}
}

func (a *Arena[T]) collect(ids []uint32) []T {
	if len(ids) == 0 {
		return nil
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.byID[id])
	}
	return out
}

func removeFromIndex[K comparable](index map[K][]uint32, key K, id uint32) {
	ids := deleteID(index[key], id)
	if len(ids) == 0 {
		delete(index, key)
		return
	}
	index[key] = ids
}

func deleteID(ids []uint32, id uint32) []uint32 {
	return slices.DeleteFunc(ids, func(v uint32) bool { return v == id })
}
