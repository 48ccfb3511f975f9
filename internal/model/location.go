package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vec2 is a point or direction in world units.
// Value type, passed by value.
type Vec2 struct {
	X float64
	Y float64
}

// NewVec2 creates Vec2.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v*k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }

// Len returns vector length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// DistanceSquared returns squared distance to another point (no sqrt for hot paths).
func (v Vec2) DistanceSquared(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Distance returns distance to another point.
func (v Vec2) Distance(o Vec2) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}

// Normalize returns unit vector (zero vector stays zero).
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// MoveToward returns the point reached by moving from v toward target by at
// most step units. Never overshoots.
func (v Vec2) MoveToward(target Vec2, step float64) Vec2 {
	d := target.Sub(v)
	dist := d.Len()
	if dist <= step || dist == 0 {
		return target
	}
	return v.Add(d.Scale(step / dist))
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
}

// Rect is an axis-aligned rectangle, half-open: [Min, Max).
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect creates Rect from origin and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Width returns rectangle width.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns rectangle height.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns rectangle centre.
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{MinX: r.MinX + d, MinY: r.MinY + d, MaxX: r.MaxX - d, MaxY: r.MaxY - d}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Clamp returns the closest point to p inside the rectangle.
func (r Rect) Clamp(p Vec2) Vec2 {
	// Max is exclusive; keep clamped points strictly inside.
	const eps = 1e-6
	return Vec2{
		X: math.Min(math.Max(p.X, r.MinX), r.MaxX-eps),
		Y: math.Min(math.Max(p.Y, r.MinY), r.MaxY-eps),
	}
}

// GridPos addresses a region cell in the world grid.
type GridPos struct {
	X int
	Y int
}

// Key returns the persisted "{gridX},{gridY}" form.
func (g GridPos) Key() string {
	return strconv.Itoa(g.X) + "," + strconv.Itoa(g.Y)
}

func (g GridPos) String() string { return g.Key() }

// ParseGridPos parses a "{gridX},{gridY}" key.
func ParseGridPos(key string) (GridPos, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(key), ",")
	if !ok {
		return GridPos{}, fmt.Errorf("region key %q: missing comma", key)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return GridPos{}, fmt.Errorf("region key %q: bad x: %w", key, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return GridPos{}, fmt.Errorf("region key %q: bad y: %w", key, err)
	}
	return GridPos{X: x, Y: y}, nil
}
