package sat2d

import (
	"errors"

	"github.com/setanarut/vec"
)

// ErrSameBody is returned when a joint is created between a body and itself.
var ErrSameBody = errors.New("sat2d: joint bodies must differ")

// AutoRestLength makes the joint factories use the current anchor separation as rest length.
const AutoRestLength = -1.0

// Joint is implemented by DistanceJoint, RevoluteJoint and SpringJoint.
type Joint interface {
	// Bodies returns the handles of the two connected bodies.
	Bodies() (BodyID, BodyID)
	// WorldAnchors returns the anchors in world space.
	WorldAnchors() (vec.Vec2, vec.Vec2)

	bind(arena *bodyArena) bool
	references(id BodyID) bool
	preStep(dt float64)
	applyImpulse()
}

// constraint holds the body handles shared by every joint kind.
//
// The pointers are resolved from the handles at the start of each step and
// are only valid until the step's cleanup.
type constraint struct {
	// AnchorA and AnchorB are the attachment points in body space.
	AnchorA, AnchorB vec.Vec2

	bodyA, bodyB BodyID
	a, b         *Body

	// anchor offsets from the body positions, in world space
	rA, rB vec.Vec2
}

func newConstraint(a, b *Body, anchorA, anchorB vec.Vec2) constraint {
	return constraint{AnchorA: anchorA, AnchorB: anchorB, bodyA: a.id, bodyB: b.id, a: a, b: b}
}

// Bodies returns the handles of the two connected bodies.
func (c *constraint) Bodies() (BodyID, BodyID) {
	return c.bodyA, c.bodyB
}

// WorldAnchors returns the anchors in world space.
func (c *constraint) WorldAnchors() (vec.Vec2, vec.Vec2) {
	if !c.bound() {
		return vec.Vec2{}, vec.Vec2{}
	}
	return c.a.position.Add(rotate(c.AnchorA, c.a.angle)), c.b.position.Add(rotate(c.AnchorB, c.b.angle))
}

// Length returns the current distance between the world anchors.
func (c *constraint) Length() float64 {
	a, b := c.WorldAnchors()
	return b.Sub(a).Mag()
}

// bind resolves the handles. It returns false if either body is gone.
func (c *constraint) bind(arena *bodyArena) bool {
	var okA, okB bool
	c.a, okA = arena.get(c.bodyA)
	c.b, okB = arena.get(c.bodyB)
	if !okA || !okB {
		c.a, c.b = nil, nil
		return false
	}
	return true
}

func (c *constraint) bound() bool {
	return c.a != nil && c.b != nil
}

// updateAnchors rotates the local anchors by the current body angles.
func (c *constraint) updateAnchors() {
	c.rA = rotate(c.AnchorA, c.a.angle)
	c.rB = rotate(c.AnchorB, c.b.angle)
}

func (c *constraint) references(id BodyID) bool {
	return c.bodyA == id || c.bodyB == id
}

// anchorSeparation returns the world distance between two local anchors.
func anchorSeparation(a, b *Body, anchorA, anchorB vec.Vec2) float64 {
	worldA := a.position.Add(rotate(anchorA, a.angle))
	worldB := b.position.Add(rotate(anchorB, b.angle))
	return worldB.Sub(worldA).Mag()
}
