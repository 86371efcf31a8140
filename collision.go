package sat2d

import (
	"math"

	"github.com/setanarut/vec"
)

// IntersectCircles tests two circles. The normal points from A toward B.
// Circles that only touch do not intersect.
func IntersectCircles(centerA vec.Vec2, radiusA float64, centerB vec.Vec2, radiusB float64) (normal vec.Vec2, depth float64, ok bool) {
	distance := centerA.Distance(centerB)
	radii := radiusA + radiusB
	if distance >= radii {
		return vec.Vec2{}, 0, false
	}
	return safeUnit(centerB.Sub(centerA)), radii - distance, true
}

// IntersectPolygons runs the separating axis test over the edge normals of
// both polygons. The normal points from centerA toward centerB.
func IntersectPolygons(centerA vec.Vec2, vertsA []vec.Vec2, centerB vec.Vec2, vertsB []vec.Vec2) (normal vec.Vec2, depth float64, ok bool) {
	depth = infinity

	for _, verts := range [2][]vec.Vec2{vertsA, vertsB} {
		for i, va := range verts {
			vb := verts[(i+1)%len(verts)]
			axis := safeUnit(perp(vb.Sub(va)))
			if axis == (vec.Vec2{}) {
				continue
			}

			minA, maxA := projectVertices(vertsA, axis)
			minB, maxB := projectVertices(vertsB, axis)
			if minA >= maxB || minB >= maxA {
				return vec.Vec2{}, 0, false
			}

			axisDepth := math.Min(maxB-minA, maxA-minB)
			if axisDepth < depth {
				depth = axisDepth
				normal = axis
			}
		}
	}

	if depth == infinity {
		return vec.Vec2{}, 0, false
	}
	if centerB.Sub(centerA).Dot(normal) < 0 {
		normal = neg(normal)
	}
	return normal, depth, true
}

// IntersectCirclePolygon tests a circle against a polygon. Besides the edge
// normals it tries the axis from the circle center to the nearest vertex.
// The normal points from the circle toward the polygon.
func IntersectCirclePolygon(circleCenter vec.Vec2, radius float64, polygonCenter vec.Vec2, verts []vec.Vec2) (normal vec.Vec2, depth float64, ok bool) {
	depth = infinity

	test := func(axis vec.Vec2) bool {
		if axis == (vec.Vec2{}) {
			return true
		}
		minA, maxA := projectVertices(verts, axis)
		minB, maxB := projectCircle(circleCenter, radius, axis)
		if minA >= maxB || minB >= maxA {
			return false
		}
		axisDepth := math.Min(maxB-minA, maxA-minB)
		if axisDepth < depth {
			depth = axisDepth
			normal = axis
		}
		return true
	}

	for i, va := range verts {
		vb := verts[(i+1)%len(verts)]
		if !test(safeUnit(perp(vb.Sub(va)))) {
			return vec.Vec2{}, 0, false
		}
	}

	closest := verts[closestVertexIndex(circleCenter, verts)]
	if !test(safeUnit(closest.Sub(circleCenter))) {
		return vec.Vec2{}, 0, false
	}

	if depth == infinity {
		return vec.Vec2{}, 0, false
	}
	if polygonCenter.Sub(circleCenter).Dot(normal) < 0 {
		normal = neg(normal)
	}
	return normal, depth, true
}

func projectVertices(verts []vec.Vec2, axis vec.Vec2) (lo, hi float64) {
	lo, hi = infinity, -infinity
	for _, v := range verts {
		p := v.Dot(axis)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}

func projectCircle(center vec.Vec2, radius float64, axis vec.Vec2) (lo, hi float64) {
	offset := axis.Scale(radius)
	lo = center.Add(offset).Dot(axis)
	hi = center.Sub(offset).Dot(axis)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func closestVertexIndex(p vec.Vec2, verts []vec.Vec2) int {
	index := -1
	best := infinity
	for i, v := range verts {
		d := lengthSq(v.Sub(p))
		if d < best {
			best = d
			index = i
		}
	}
	return index
}

// Collide runs the narrow phase on a and b. The returned manifold has its
// normal pointing from a toward b and one or two contact points.
func Collide(a, b *Body) (Manifold, bool) {
	var (
		normal vec.Vec2
		depth  float64
		ok     bool
	)

	switch {
	case a.shape.Kind == ShapeCircle && b.shape.Kind == ShapeCircle:
		normal, depth, ok = IntersectCircles(a.position, a.shape.Radius, b.position, b.shape.Radius)
	case a.shape.Kind == ShapeCircle:
		normal, depth, ok = IntersectCirclePolygon(a.position, a.shape.Radius, b.position, b.TransformedVertices())
	case b.shape.Kind == ShapeCircle:
		normal, depth, ok = IntersectCirclePolygon(b.position, b.shape.Radius, a.position, a.TransformedVertices())
		normal = neg(normal)
	default:
		normal, depth, ok = IntersectPolygons(a.position, a.TransformedVertices(), b.position, b.TransformedVertices())
	}
	if !ok {
		return Manifold{}, false
	}

	m := Manifold{BodyA: a, BodyB: b, Normal: normal, Depth: depth}
	m.Contacts, m.ContactCount = FindContactPoints(a, b)
	return m, true
}
