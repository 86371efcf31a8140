package sat2d

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

const (
	infinity     float64 = math.MaxFloat64
	magicEpsilon float64 = 1e-5
	// nearlyEqualThreshold is the tolerance used when merging polygon contact points.
	nearlyEqualThreshold float64 = 0.0005
	// singularEpsilon guards the 2x2 revolute mass matrix inversion.
	singularEpsilon float64 = 1e-6
	// minTimeStep keeps bias terms finite for degenerate time steps.
	minTimeStep float64 = 1e-4
)

// Mat2x2 is a 2x2 matrix type used for the revolute joint effective mass.
//
//	| a  b |
//	| c  d |
type Mat2x2 struct {
	a, b, c, d float64
}

// NewMat2x2 returns a matrix from its row-major elements.
func NewMat2x2(a, b, c, d float64) Mat2x2 {
	return Mat2x2{a, b, c, d}
}

// Transform transforms Vector a
func (m Mat2x2) Transform(a vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: a.X*m.a + a.Y*m.b, Y: a.X*m.c + a.Y*m.d}
}

// Det returns the determinant of m.
func (m Mat2x2) Det() float64 {
	return m.a*m.d - m.b*m.c
}

// Invert returns the inverse of m, or the zero matrix if m is singular.
func (m Mat2x2) Invert() Mat2x2 {
	det := m.Det()
	if math.Abs(det) < singularEpsilon {
		return Mat2x2{}
	}
	detInv := 1.0 / det
	return Mat2x2{
		m.d * detInv, -m.b * detInv,
		-m.c * detInv, m.a * detInv,
	}
}

// Elements returns the row-major elements of m.
func (m Mat2x2) Elements() (a, b, c, d float64) {
	return m.a, m.b, m.c, m.d
}

// DebugInfo returns a short summary of the world state.
func DebugInfo(w *World) string {
	points := 0
	for i := range w.contacts {
		points += w.contacts[i].ContactCount
	}

	var ke float64
	for _, body := range w.bodies {
		ke += body.KineticEnergy()
	}

	joints := len(w.distanceJoints) + len(w.revoluteJoints) + len(w.springJoints)

	return fmt.Sprintf(`Bodies: %d - Contacts: %d - Contact Points: %d
Joints: %d (distance %d, revolute %d, spring %d), Cached Pairs: %d
Steps: %d
KE: %e`, len(w.bodies), len(w.contacts), points,
		joints, len(w.distanceJoints), len(w.revoluteJoints), len(w.springJoints), w.cache.Len(),
		w.steps, ke)
}

func clamp(f, min, max float64) float64 {
	if f > min {
		return math.Min(f, max)
	} else {
		return math.Min(min, max)
	}
}

// Perp returns a perpendicular vector. (90 degree rotation)
func perp(a vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -a.Y, Y: a.X}
}

func neg(a vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -a.X, Y: -a.Y}
}

func lengthSq(a vec.Vec2) float64 {
	return a.Dot(a)
}

// safeUnit returns a normalized copy of a, or the zero vector if a is too short to normalize.
func safeUnit(a vec.Vec2) vec.Vec2 {
	mag := a.Mag()
	if mag < magicEpsilon {
		return vec.Vec2{}
	}
	return a.Scale(1 / mag)
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= nearlyEqualThreshold
}

func nearlyEqualVec(a, b vec.Vec2) bool {
	return nearlyEqual(a.X, b.X) && nearlyEqual(a.Y, b.Y)
}

// rotate rotates a by angle radians.
func rotate(a vec.Vec2, angle float64) vec.Vec2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return vec.Vec2{X: c*a.X - s*a.Y, Y: s*a.X + c*a.Y}
}

// applyImpulses applies j to b and -j to a at the given offsets. Static bodies are skipped.
func applyImpulses(a, b *Body, r1, r2, j vec.Vec2) {
	applyImpulse(a, neg(j), r1)
	applyImpulse(b, j, r2)
}

func applyImpulse(body *Body, j, r vec.Vec2) {
	if body.invMass == 0 && body.invMoment == 0 {
		return
	}
	body.velocity = body.velocity.Add(j.Scale(body.invMass))
	body.angularVelocity += r.Cross(j) * body.invMoment
}

// relativeVelocity returns the velocity of b's point r2 relative to a's point r1.
func relativeVelocity(a, b *Body, r1, r2 vec.Vec2) vec.Vec2 {
	v1 := a.velocity.Add(perp(r1).Scale(a.angularVelocity))
	v2 := b.velocity.Add(perp(r2).Scale(b.angularVelocity))
	return v2.Sub(v1)
}

// kScalar returns the inverse effective mass of a and b along n.
func kScalar(a, b *Body, r1, r2, n vec.Vec2) float64 {
	rcn1 := r1.Cross(n)
	rcn2 := r2.Cross(n)
	return a.invMass + b.invMass + rcn1*rcn1*a.invMoment + rcn2*rcn2*b.invMoment
}
