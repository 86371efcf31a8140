package sat2d

import (
	"math"

	"github.com/setanarut/vec"
)

// MaxDistanceImpulse bounds the accumulated impulse of a DistanceJoint.
const MaxDistanceImpulse = 1000.0

// hardDistanceBias is the Baumgarte factor of a DistanceJoint with FrequencyHz 0.
const hardDistanceBias = 0.1

// DistanceJoint keeps two anchor points at RestLength from each other.
//
// With FrequencyHz > 0 the constraint is soft and behaves like a damped spring;
// with FrequencyHz 0 it is rigid and corrects drift with a fixed bias.
type DistanceJoint struct {
	constraint
	RestLength   float64
	FrequencyHz  float64
	DampingRatio float64
	Enabled      bool

	axis          vec.Vec2
	effectiveMass float64
	bias, gamma   float64
	impulse       float64
}

// Impulse returns the accumulated impulse along the joint axis.
func (joint *DistanceJoint) Impulse() float64 {
	return joint.impulse
}

func (joint *DistanceJoint) preStep(dt float64) {
	if !joint.Enabled || !joint.bound() {
		return
	}
	a := joint.a
	b := joint.b

	joint.updateAnchors()

	delta := b.position.Add(joint.rB).Sub(a.position.Add(joint.rA))
	distance := math.Max(delta.Mag(), minTimeStep)
	joint.axis = delta.Scale(1 / distance)

	invMass := kScalar(a, b, joint.rA, joint.rB, joint.axis)
	stretch := distance - joint.RestLength

	joint.gamma = 0
	joint.bias = 0

	if joint.FrequencyHz > 0 {
		mass := 0.0
		if invMass > 0 {
			mass = 1 / invMass
		}
		omega := 2 * math.Pi * joint.FrequencyHz
		d := 2 * mass * joint.DampingRatio * omega
		k := mass * omega * omega

		joint.gamma = dt * (d + dt*k)
		if joint.gamma > 0 {
			joint.gamma = 1 / joint.gamma
		}
		joint.bias = stretch * dt * k * joint.gamma
		joint.effectiveMass = 0
		if invMass+joint.gamma > 0 {
			joint.effectiveMass = 1 / (invMass + joint.gamma)
		}
	} else {
		joint.effectiveMass = 0
		if invMass > 0 {
			joint.effectiveMass = 1 / invMass
		}
		joint.bias = stretch * hardDistanceBias / math.Max(dt, minTimeStep)
	}

	// warm start
	applyImpulses(a, b, joint.rA, joint.rB, joint.axis.Scale(joint.impulse))
}

func (joint *DistanceJoint) applyImpulse() {
	if !joint.Enabled || !joint.bound() || joint.effectiveMass == 0 {
		return
	}
	a := joint.a
	b := joint.b

	vn := relativeVelocity(a, b, joint.rA, joint.rB).Dot(joint.axis)

	lambda := -(vn + joint.bias + joint.gamma*joint.impulse) * joint.effectiveMass
	old := joint.impulse
	joint.impulse = clamp(old+lambda, -MaxDistanceImpulse, MaxDistanceImpulse)
	lambda = joint.impulse - old

	applyImpulses(a, b, joint.rA, joint.rB, joint.axis.Scale(lambda))
}
