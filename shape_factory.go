package sat2d

import (
	"math"

	"github.com/setanarut/vec"
)

// boxVertices returns the corners of a w x h box centered on the origin.
func boxVertices(w, h float64) []vec.Vec2 {
	left := -w / 2.0
	right := left + w
	bottom := -h / 2.0
	top := bottom + h
	return []vec.Vec2{
		{X: left, Y: top},
		{X: right, Y: top},
		{X: right, Y: bottom},
		{X: left, Y: bottom},
	}
}

// MomentForCircle calculates the moment of inertia for a solid circle.
func MomentForCircle(mass, radius float64) float64 {
	return 0.5 * mass * radius * radius
}

// AreaForCircle returns the area of a solid circle.
func AreaForCircle(radius float64) float64 {
	return math.Pi * radius * radius
}

// AreaForPoly returns the unsigned area of a simple polygon.
func AreaForPoly(verts []vec.Vec2) float64 {
	areaTwice, _ := polySums(verts)
	return math.Abs(areaTwice) * 0.5
}

// MomentForPoly calculates the moment of inertia of a solid polygon of the
// given mass about the origin of its vertex list.
//
// The density comes from the true polygon area, so boxes and arbitrary convex
// polygons share the same formula. A polygon without area has no inertia.
func MomentForPoly(mass float64, verts []vec.Vec2) float64 {
	areaTwice, numerator := polySums(verts)
	area := math.Abs(areaTwice) * 0.5
	if area <= 0 {
		return 0
	}
	density := mass / area
	return (density / 12.0) * math.Abs(numerator)
}

// polySums accumulates twice the signed area and the second-moment numerator
// of the shoelace decomposition.
func polySums(verts []vec.Vec2) (areaTwice, numerator float64) {
	count := len(verts)
	for i := range count {
		p0 := verts[i]
		p1 := verts[(i+1)%count]
		cross := p0.Cross(p1)
		areaTwice += cross
		term := (p0.X*p0.X + p0.X*p1.X + p1.X*p1.X) + (p0.Y*p0.Y + p0.Y*p1.Y + p1.Y*p1.Y)
		numerator += cross * term
	}
	return areaTwice, numerator
}

// CentroidForPoly calculates the signed-area centroid of a polygon.
//
// Polygons with near-zero area fall back to the arithmetic mean of the vertices.
func CentroidForPoly(verts []vec.Vec2) vec.Vec2 {
	if len(verts) == 0 {
		return vec.Vec2{}
	}

	var sum float64
	vsum := vec.Vec2{}
	count := len(verts)
	for i := range count {
		v1 := verts[i]
		v2 := verts[(i+1)%count]
		cross := v1.Cross(v2)

		sum += cross
		vsum = vsum.Add(v1.Add(v2).Scale(cross))
	}

	if math.Abs(sum) < magicEpsilon {
		return arithmeticMean(verts)
	}
	return vsum.Scale(1.0 / (3.0 * sum))
}

func arithmeticMean(verts []vec.Vec2) vec.Vec2 {
	mean := vec.Vec2{}
	for _, v := range verts {
		mean = mean.Add(v)
	}
	return mean.Scale(1 / float64(len(verts)))
}

// ConvexHull returns the convex hull of verts, starting at the leftmost point.
// The input slice is not modified.
//
// QuickHull, reducing in place on a scratch copy.
func ConvexHull(verts []vec.Vec2, tol float64) []vec.Vec2 {
	if len(verts) == 0 {
		return nil
	}
	scratch := append([]vec.Vec2(nil), verts...)
	count := len(scratch)

	start, end := extremeIndexes(scratch)
	if start == end {
		return scratch[:1]
	}

	scratch[0], scratch[start] = scratch[start], scratch[0]
	if end == 0 {
		end = start
	}
	scratch[1], scratch[end] = scratch[end], scratch[1]

	a := scratch[0]
	b := scratch[1]
	n := hullReduce(tol, scratch[2:], count-2, a, b, a, scratch[1:]) + 1
	return scratch[:n]
}

// extremeIndexes finds the lexicographically smallest and largest points.
func extremeIndexes(verts []vec.Vec2) (int, int) {
	start, end := 0, 0
	lo, hi := verts[0], verts[0]
	for i := 1; i < len(verts); i++ {
		v := verts[i]
		if v.X < lo.X || (v.X == lo.X && v.Y < lo.Y) {
			lo = v
			start = i
		} else if v.X > hi.X || (v.X == hi.X && v.Y > hi.Y) {
			hi = v
			end = i
		}
	}
	return start, end
}

func hullReduce(tol float64, verts []vec.Vec2, count int, a, pivot, b vec.Vec2, result []vec.Vec2) int {
	if count == 0 {
		result[0] = pivot
		return 1
	}

	left := hullPartition(verts, count, a, pivot, tol)
	var index int
	if left-1 >= 0 {
		index = hullReduce(tol, verts[1:], left-1, a, verts[0], pivot, result)
	}

	result[index] = pivot
	index++

	right := hullPartition(verts[left:], count-left, pivot, b, tol)
	if right-1 < 0 {
		return index
	}
	return index + hullReduce(tol, verts[left+1:], right-1, pivot, verts[left], b, result[index:])
}

// hullPartition moves the points strictly left of a->b to the front and
// returns their count; the farthest one ends up first.
func hullPartition(verts []vec.Vec2, count int, a, b vec.Vec2, tol float64) int {
	if count == 0 {
		return 0
	}

	best := 0.0
	pivot := 0

	delta := b.Sub(a)
	valueTol := tol * delta.Mag()

	head := 0
	for tail := count - 1; head <= tail; {
		value := verts[head].Sub(a).Cross(delta)
		if value > valueTol {
			if value > best {
				best = value
				pivot = head
			}
			head++
		} else {
			verts[head], verts[tail] = verts[tail], verts[head]
			tail--
		}
	}

	if pivot != 0 {
		verts[0], verts[pivot] = verts[pivot], verts[0]
	}
	return head
}
