package sat2d

import (
	"github.com/setanarut/vec"
)

// Manifold is the result of a confirmed collision between two bodies.
//
// It is rebuilt every step; the World keeps the last two lists for visualization.
type Manifold struct {
	BodyA, BodyB *Body
	// Normal points from BodyA toward BodyB.
	Normal vec.Vec2
	// Depth is the penetration along Normal.
	Depth        float64
	Contacts     [MaxContactsPerManifold]vec.Vec2
	ContactCount int
}

// Bodies returns the colliding bodies.
func (m *Manifold) Bodies() (*Body, *Body) {
	return m.BodyA, m.BodyB
}

// Points returns the valid contact points.
func (m *Manifold) Points() []vec.Vec2 {
	return m.Contacts[:m.ContactCount]
}

// Key returns the canonical cache key of the pair.
func (m *Manifold) Key() PairKey {
	return MakePairKey(m.BodyA.id, m.BodyB.id)
}

// Friction returns the friction coefficients of the two materials in contact.
// The solver does not use them.
func (m *Manifold) Friction() MaterialPair {
	return FrictionBetween(m.BodyA.material, m.BodyB.material)
}

// Restitution returns the combined coefficient of restitution, the smaller of the two.
func (m *Manifold) Restitution() float64 {
	return min(m.BodyA.restitution, m.BodyB.restitution)
}

// resolve applies the normal impulse for every contact point. Points whose
// relative normal velocity is not approaching are skipped. All impulses are
// computed from the same pre-impulse velocities before any is applied.
func (m *Manifold) resolve() {
	a, b := m.BodyA, m.BodyB
	if m.ContactCount == 0 {
		return
	}

	e := m.Restitution()
	var (
		impulses [MaxContactsPerManifold]vec.Vec2
		ra, rb   [MaxContactsPerManifold]vec.Vec2
		apply    [MaxContactsPerManifold]bool
	)

	for i := range m.ContactCount {
		contact := m.Contacts[i]
		ra[i] = contact.Sub(a.position)
		rb[i] = contact.Sub(b.position)

		vn := relativeVelocity(a, b, ra[i], rb[i]).Dot(m.Normal)
		if vn >= 0 {
			continue
		}

		k := kScalar(a, b, ra[i], rb[i], m.Normal)
		if k <= 0 {
			continue
		}

		j := -(1 + e) * vn / k
		j /= float64(m.ContactCount)
		impulses[i] = m.Normal.Scale(j)
		apply[i] = true
	}

	for i := range m.ContactCount {
		if apply[i] {
			applyImpulses(a, b, ra[i], rb[i], impulses[i])
		}
	}
}

// correctPositions pushes the bodies apart by a fraction of the penetration
// that exceeds slop.
func (m *Manifold) correctPositions(slop, percent float64) {
	a, b := m.BodyA, m.BodyB
	if a.static && b.static {
		return
	}
	invMassSum := a.invMass + b.invMass
	if invMassSum == 0 {
		return
	}

	magnitude := max(m.Depth-slop, 0)
	if magnitude <= 0 {
		return
	}

	correction := m.Normal.Scale(magnitude / invMassSum * percent)
	if !a.static {
		a.Move(correction.Scale(-a.invMass))
	}
	if !b.static {
		b.Move(correction.Scale(b.invMass))
	}
}
