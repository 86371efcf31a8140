package sat2d

import (
	"github.com/setanarut/vec"
)

// SpringJoint is an explicit damped spring between two anchors.
//
// It applies F = -Stiffness*(length-RestLength) - Damping*v along the anchor
// axis as an impulse F*dt once per step and keeps no state between steps.
type SpringJoint struct {
	constraint
	RestLength float64
	Stiffness  float64
	Damping    float64

	force float64
}

// Force returns the spring force of the last step along the anchor axis.
// Negative values pull the bodies together.
func (spring *SpringJoint) Force() float64 {
	return spring.force
}

func (spring *SpringJoint) preStep(dt float64) {
	if !spring.bound() {
		return
	}
	a := spring.a
	b := spring.b

	spring.updateAnchors()

	delta := b.position.Add(spring.rB).Sub(a.position.Add(spring.rA))
	length := delta.Mag()
	axis := safeUnit(delta)
	if axis == (vec.Vec2{}) {
		spring.force = 0
		return
	}

	vn := relativeVelocity(a, b, spring.rA, spring.rB).Dot(axis)
	spring.force = -spring.Stiffness*(length-spring.RestLength) - spring.Damping*vn

	applyImpulses(a, b, spring.rA, spring.rB, axis.Scale(spring.force*dt))
}

func (spring *SpringJoint) applyImpulse() {
	// nothing to do here
}
