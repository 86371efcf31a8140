package sat2d

import (
	"errors"
	"fmt"

	"github.com/setanarut/vec"
)

// ErrTooFewVertices is returned when a polygon is defined with less than three vertices.
var ErrTooFewVertices = errors.New("sat2d: polygon needs at least 3 vertices")

// ShapeKind identifies the geometry carried by a body.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	// ShapeBox is an axis box in body space. It is a polygon whose vertices are
	// already centered, so no centroid shift is applied.
	ShapeBox
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeBox:
		return "box"
	case ShapePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// Shape is a tagged union over the supported geometries.
//
// Circles use Radius. Boxes and polygons use Vertices, stored in body space
// relative to the centroid; Width and Height hold the extents of that vertex list.
type Shape struct {
	Kind     ShapeKind
	Radius   float64
	Width    float64
	Height   float64
	Vertices []vec.Vec2
}

// NewCircleShape returns a circle geometry with radius r.
func NewCircleShape(r float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: r, Width: 2 * r, Height: 2 * r}
}

// NewBoxShape returns an axis box geometry of size w x h centered on the origin.
func NewBoxShape(w, h float64) Shape {
	return Shape{Kind: ShapeBox, Width: w, Height: h, Vertices: boxVertices(w, h)}
}

// NewPolygonShape returns a polygon geometry. The vertices are copied as
// given; centering on the centroid happens when the shape is attached to a body.
func NewPolygonShape(vertices []vec.Vec2) (Shape, error) {
	if len(vertices) < 3 {
		return Shape{}, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(vertices))
	}
	s := Shape{Kind: ShapePolygon, Vertices: append([]vec.Vec2(nil), vertices...)}
	s.updateExtents()
	return s, nil
}

// IsPolygon reports whether the shape is described by a vertex list.
func (s Shape) IsPolygon() bool {
	return s.Kind == ShapeBox || s.Kind == ShapePolygon
}

// clone returns a deep copy so that bodies never share vertex storage.
func (s Shape) clone() Shape {
	s.Vertices = append([]vec.Vec2(nil), s.Vertices...)
	return s
}

func (s *Shape) updateExtents() {
	if !s.IsPolygon() {
		return
	}
	if len(s.Vertices) == 0 {
		s.Width, s.Height = 0, 0
		return
	}
	bb := NewAABBForPoints(s.Vertices)
	s.Width = bb.Width()
	s.Height = bb.Height()
}
