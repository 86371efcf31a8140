package sat2d

import (
	"github.com/setanarut/vec"
)

// MaxContactsPerManifold is the largest number of contact points in a Manifold.
const MaxContactsPerManifold = 2

// FindContactPoints returns the world contact points of two overlapping
// bodies and how many of them are valid.
func FindContactPoints(a, b *Body) (points [MaxContactsPerManifold]vec.Vec2, count int) {
	switch {
	case a.shape.Kind == ShapeCircle && b.shape.Kind == ShapeCircle:
		points[0] = circleContact(a.position, a.shape.Radius, b.position)
		return points, 1
	case a.shape.Kind == ShapeCircle:
		points[0] = circlePolygonContact(a.position, b.TransformedVertices())
		return points, 1
	case b.shape.Kind == ShapeCircle:
		points[0] = circlePolygonContact(b.position, a.TransformedVertices())
		return points, 1
	default:
		return polygonContacts(a.TransformedVertices(), b.TransformedVertices())
	}
}

func circleContact(centerA vec.Vec2, radiusA float64, centerB vec.Vec2) vec.Vec2 {
	return centerA.Add(safeUnit(centerB.Sub(centerA)).Scale(radiusA))
}

// circlePolygonContact returns the point on the polygon outline closest to center.
func circlePolygonContact(center vec.Vec2, verts []vec.Vec2) vec.Vec2 {
	var contact vec.Vec2
	minDistSq := infinity
	for i, va := range verts {
		vb := verts[(i+1)%len(verts)]
		cp, distSq := pointSegmentDistance(center, va, vb)
		if distSq < minDistSq {
			minDistSq = distSq
			contact = cp
		}
	}
	return contact
}

// polygonContacts projects each vertex of one polygon onto the edges of the
// other and keeps the closest point, plus a second one at an equal distance.
func polygonContacts(vertsA, vertsB []vec.Vec2) (points [MaxContactsPerManifold]vec.Vec2, count int) {
	minDistSq := infinity

	scan := func(from, onto []vec.Vec2) {
		for _, p := range from {
			for j, va := range onto {
				vb := onto[(j+1)%len(onto)]
				cp, distSq := pointSegmentDistance(p, va, vb)

				if nearlyEqual(distSq, minDistSq) {
					if !nearlyEqualVec(cp, points[0]) {
						points[1] = cp
						count = 2
					}
				} else if distSq < minDistSq {
					minDistSq = distSq
					points[0] = cp
					count = 1
				}
			}
		}
	}

	scan(vertsA, vertsB)
	scan(vertsB, vertsA)
	return points, count
}

// pointSegmentDistance returns the closest point to p on segment ab and the
// squared distance to it.
func pointSegmentDistance(p, a, b vec.Vec2) (closest vec.Vec2, distSq float64) {
	ab := b.Sub(a)
	lenSq := lengthSq(ab)
	if lenSq == 0 {
		return a, lengthSq(p.Sub(a))
	}

	d := p.Sub(a).Dot(ab) / lenSq
	switch {
	case d <= 0:
		closest = a
	case d >= 1:
		closest = b
	default:
		closest = a.Add(ab.Scale(d))
	}
	return closest, lengthSq(p.Sub(closest))
}
