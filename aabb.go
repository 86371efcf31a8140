package sat2d

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// AABB is an axis-aligned 2D bounding box given by its min and max corners.
//
// A body's AABB is derived data: it is always recomputable from the body's
// shape and transform.
type AABB struct {
	Min, Max vec.Vec2
}

// NewAABB is convenience constructor for AABB structs.
func NewAABB(minX, minY, maxX, maxY float64) AABB {
	return AABB{
		Min: vec.Vec2{X: minX, Y: minY},
		Max: vec.Vec2{X: maxX, Y: maxY},
	}
}

func (bb AABB) String() string {
	return fmt.Sprintf("%v %v %v %v", bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y)
}

// NewAABBForExtents constructs an AABB centered on a point with the given extents (half sizes).
func NewAABBForExtents(c vec.Vec2, hw, hh float64) AABB {
	return NewAABB(c.X-hw, c.Y-hh, c.X+hw, c.Y+hh)
}

// NewAABBForCircle constructs an AABB for a circle with the given position and radius.
func NewAABBForCircle(p vec.Vec2, r float64) AABB {
	return NewAABBForExtents(p, r, r)
}

// NewAABBForPoints returns the smallest AABB holding all points.
// An empty point list gives an inverted box that intersects nothing.
func NewAABBForPoints(points []vec.Vec2) AABB {
	bb := NewAABB(infinity, infinity, -infinity, -infinity)
	for _, p := range points {
		bb = bb.Expand(p)
	}
	return bb
}

// Intersects returns true if a and b overlap. Touching boxes intersect.
func (bb AABB) Intersects(b AABB) bool {
	return bb.Min.X <= b.Max.X && b.Min.X <= bb.Max.X && bb.Min.Y <= b.Max.Y && b.Min.Y <= bb.Max.Y
}

// Contains returns true if other lies completely within bb.
func (bb AABB) Contains(other AABB) bool {
	return bb.Min.X <= other.Min.X && bb.Max.X >= other.Max.X && bb.Min.Y <= other.Min.Y && bb.Max.Y >= other.Max.Y
}

// ContainsPoint returns true if bb contains p.
func (bb AABB) ContainsPoint(p vec.Vec2) bool {
	return bb.Min.X <= p.X && bb.Max.X >= p.X && bb.Min.Y <= p.Y && bb.Max.Y >= p.Y
}

// Merge returns a bounding box that holds both bounding boxes.
func (bb AABB) Merge(b AABB) AABB {
	return NewAABB(
		math.Min(bb.Min.X, b.Min.X),
		math.Min(bb.Min.Y, b.Min.Y),
		math.Max(bb.Max.X, b.Max.X),
		math.Max(bb.Max.Y, b.Max.Y),
	)
}

// Expand returns a bounding box that holds both bb and p.
func (bb AABB) Expand(p vec.Vec2) AABB {
	return NewAABB(
		math.Min(bb.Min.X, p.X),
		math.Min(bb.Min.Y, p.Y),
		math.Max(bb.Max.X, p.X),
		math.Max(bb.Max.Y, p.Y),
	)
}

// Center returns the center of a bounding box.
func (bb AABB) Center() vec.Vec2 {
	return bb.Min.Lerp(bb.Max, 0.5)
}

// Width returns the horizontal extent of the box.
func (bb AABB) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the vertical extent of the box.
func (bb AABB) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// MergedArea returns the area of the box holding both bb and b.
func (bb AABB) MergedArea(b AABB) float64 {
	return (math.Max(bb.Max.X, b.Max.X) - math.Min(bb.Min.X, b.Min.X)) * (math.Max(bb.Max.Y, b.Max.Y) - math.Min(bb.Min.Y, b.Min.Y))
}

// Proximity returns the Manhattan distance between the centers of bb and b, doubled.
func (bb AABB) Proximity(b AABB) float64 {
	return math.Abs(bb.Min.X+bb.Max.X-b.Min.X-b.Max.X) + math.Abs(bb.Min.Y+bb.Max.Y-b.Min.Y-b.Max.Y)
}

// Area returns the area of the bounding box.
func (bb AABB) Area() float64 {
	return bb.Width() * bb.Height()
}
