package sat2d

import (
	"math"

	"github.com/setanarut/vec"
)

// RevoluteJoint pins an anchor of each body to the same world point and lets
// the bodies rotate freely around it.
type RevoluteJoint struct {
	constraint
	BiasFactor float64
	// Softness is added to the diagonal of the mass matrix, scaled by 1/dt.
	Softness float64
	Enabled  bool

	k       Mat2x2 // inverse of the effective mass matrix
	bias    vec.Vec2
	impulse vec.Vec2
}

// Impulse returns the accumulated impulse.
func (joint *RevoluteJoint) Impulse() vec.Vec2 {
	return joint.impulse
}

// MassMatrix returns the inverted effective mass matrix of the last pre-step.
func (joint *RevoluteJoint) MassMatrix() Mat2x2 {
	return joint.k
}

// kTensor builds the 2x2 inverse effective mass of a point constraint.
func kTensor(a, b *Body, rA, rB vec.Vec2, softness float64) Mat2x2 {
	mSum := a.invMass + b.invMass
	iA := a.invMoment
	iB := b.invMoment

	k11 := mSum + rA.Y*rA.Y*iA + rB.Y*rB.Y*iB
	k12 := -rA.X*rA.Y*iA - rB.X*rB.Y*iB
	k22 := mSum + rA.X*rA.X*iA + rB.X*rB.X*iB

	k11 += softness
	k22 += softness
	return NewMat2x2(k11, k12, k12, k22)
}

func (joint *RevoluteJoint) preStep(dt float64) {
	if !joint.Enabled || !joint.bound() {
		return
	}
	a := joint.a
	b := joint.b
	dt = math.Max(dt, minTimeStep)

	joint.updateAnchors()

	var softness float64
	if joint.Softness > 0 {
		softness = joint.Softness / dt
	}
	joint.k = kTensor(a, b, joint.rA, joint.rB, softness).Invert()

	delta := b.position.Add(joint.rB).Sub(a.position.Add(joint.rA))
	joint.bias = delta.Scale(joint.BiasFactor / dt)

	// warm start
	applyImpulses(a, b, joint.rA, joint.rB, joint.impulse)
}

func (joint *RevoluteJoint) applyImpulse() {
	if !joint.Enabled || !joint.bound() {
		return
	}
	a := joint.a
	b := joint.b

	vr := relativeVelocity(a, b, joint.rA, joint.rB).Add(joint.bias)
	lambda := neg(joint.k.Transform(vr))
	joint.impulse = joint.impulse.Add(lambda)

	applyImpulses(a, b, joint.rA, joint.rB, lambda)
}
