package sat2d

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/setanarut/vec"
)

// Default world tunables.
const (
	DefaultSlop                 = 0.01
	DefaultCorrectionPercent    = 0.4
	DefaultJointIterations      = 5
	DefaultCollisionPersistence = 2
)

// DefaultBounds is the region outside of which bodies are removed.
var DefaultBounds = AABB{
	Min: vec.Vec2{X: -50, Y: math.Inf(-1)},
	Max: vec.Vec2{X: 1250, Y: 900},
}

// World owns every body and joint and advances them in time.
type World struct {
	// Gravity is applied to every dynamic body as the force Gravity*mass.
	Gravity vec.Vec2
	// Slop is the penetration depth left uncorrected by positional correction.
	Slop float64
	// CorrectionPercent is the fraction of the remaining penetration removed per step.
	CorrectionPercent float64
	// JointIterations is the number of joint impulse passes per step.
	JointIterations int
	// CollisionPersistence is the number of steps a cached pair survives without contact.
	CollisionPersistence int
	// Bodies whose position leaves Bounds are removed when CullOutOfBounds is set.
	Bounds          AABB
	CullOutOfBounds bool
	BroadPhase      BroadPhase

	logger *log.Logger

	arena          bodyArena
	bodies         []*Body
	distanceJoints []*DistanceJoint
	revoluteJoints []*RevoluteJoint
	springJoints   []*SpringJoint

	pairs      []BodyPair
	contacts   []Manifold
	indicators []Manifold
	cache      *ManifoldCache

	steps uint64
}

// NewWorld returns an empty world with the default tunables.
func NewWorld(gravity vec.Vec2) *World {
	return &World{
		Gravity:              gravity,
		Slop:                 DefaultSlop,
		CorrectionPercent:    DefaultCorrectionPercent,
		JointIterations:      DefaultJointIterations,
		CollisionPersistence: DefaultCollisionPersistence,
		Bounds:               DefaultBounds,
		CullOutOfBounds:      true,
		BroadPhase:           &SweepAndPrune{},
		logger:               log.New(io.Discard),
		cache:                NewManifoldCache(DefaultCollisionPersistence),
	}
}

// SetLogger sets the logger used for lifecycle events. nil discards them.
func (w *World) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w.logger = logger
}

// Logger returns the world's logger.
func (w *World) Logger() *log.Logger {
	return w.logger
}

func (w *World) addBody(body *Body) *Body {
	w.arena.insert(body)
	w.bodies = append(w.bodies, body)
	return body
}

// CreateCircle adds a circle body of the given radius.
func (w *World) CreateCircle(radius float64, def BodyDef) *Body {
	return w.addBody(newBody(NewCircleShape(radius), def))
}

// CreateBox adds an axis box body of size width x height, centered on def.Position.
func (w *World) CreateBox(width, height float64, def BodyDef) *Body {
	return w.addBody(newBody(NewBoxShape(width, height), def))
}

// CreatePolygon adds a convex polygon body. The vertices are given relative to
// def.Position and are recentered on their centroid. Nothing is added on error.
func (w *World) CreatePolygon(vertices []vec.Vec2, def BodyDef) (*Body, error) {
	shape, err := NewPolygonShape(vertices)
	if err != nil {
		return nil, fmt.Errorf("create polygon: %w", err)
	}
	return w.addBody(newBody(shape, def)), nil
}

func (w *World) jointBodies(a, b BodyID) (*Body, *Body, error) {
	bodyA, ok := w.arena.get(a)
	if !ok {
		return nil, nil, fmt.Errorf("body %v: %w", a, ErrBodyNotFound)
	}
	bodyB, ok := w.arena.get(b)
	if !ok {
		return nil, nil, fmt.Errorf("body %v: %w", b, ErrBodyNotFound)
	}
	if a == b {
		return nil, nil, fmt.Errorf("body %v: %w", a, ErrSameBody)
	}
	return bodyA, bodyB, nil
}

// CreateDistanceJoint connects anchorA of a to anchorB of b (both in body space).
// A negative restLength (AutoRestLength) uses the current anchor separation.
// frequencyHz 0 makes the joint rigid.
func (w *World) CreateDistanceJoint(a, b BodyID, anchorA, anchorB vec.Vec2, restLength, frequencyHz, dampingRatio float64) (*DistanceJoint, error) {
	bodyA, bodyB, err := w.jointBodies(a, b)
	if err != nil {
		return nil, fmt.Errorf("create distance joint: %w", err)
	}
	if restLength < 0 {
		restLength = anchorSeparation(bodyA, bodyB, anchorA, anchorB)
	}
	joint := &DistanceJoint{
		constraint:   newConstraint(bodyA, bodyB, anchorA, anchorB),
		RestLength:   restLength,
		FrequencyHz:  frequencyHz,
		DampingRatio: dampingRatio,
		Enabled:      true,
	}
	w.distanceJoints = append(w.distanceJoints, joint)
	return joint, nil
}

// CreateRevoluteJoint pins anchorA of a to anchorB of b (both in body space).
func (w *World) CreateRevoluteJoint(a, b BodyID, anchorA, anchorB vec.Vec2, biasFactor, softness float64) (*RevoluteJoint, error) {
	bodyA, bodyB, err := w.jointBodies(a, b)
	if err != nil {
		return nil, fmt.Errorf("create revolute joint: %w", err)
	}
	joint := &RevoluteJoint{
		constraint: newConstraint(bodyA, bodyB, anchorA, anchorB),
		BiasFactor: biasFactor,
		Softness:   softness,
		Enabled:    true,
	}
	w.revoluteJoints = append(w.revoluteJoints, joint)
	return joint, nil
}

// CreateSpringJoint connects anchorA of a to anchorB of b with a damped spring.
// A negative restLength (AutoRestLength) uses the current anchor separation.
func (w *World) CreateSpringJoint(a, b BodyID, anchorA, anchorB vec.Vec2, restLength, stiffness, damping float64) (*SpringJoint, error) {
	bodyA, bodyB, err := w.jointBodies(a, b)
	if err != nil {
		return nil, fmt.Errorf("create spring joint: %w", err)
	}
	if restLength < 0 {
		restLength = anchorSeparation(bodyA, bodyB, anchorA, anchorB)
	}
	spring := &SpringJoint{
		constraint: newConstraint(bodyA, bodyB, anchorA, anchorB),
		RestLength: restLength,
		Stiffness:  stiffness,
		Damping:    damping,
	}
	w.springJoints = append(w.springJoints, spring)
	return spring, nil
}

// Update advances the world by dt seconds split into iterations equal substeps.
func (w *World) Update(dt float64, iterations int) {
	if dt <= 0 {
		return
	}
	if iterations < 1 {
		iterations = 1
	}
	dt /= float64(iterations)
	for range iterations {
		w.step(dt)
	}
}

// step runs one substep. The stage order is load-bearing.
func (w *World) step(dt float64) {
	w.indicators, w.contacts = w.contacts, w.indicators[:0]

	for _, body := range w.bodies {
		body.integrate(dt)
	}

	for _, body := range w.bodies {
		body.force = vec.Vec2{}
		if !body.static {
			body.force = w.Gravity.Scale(body.mass)
		}
	}

	w.preStepJoints(dt)

	w.pairs = w.BroadPhase.Pairs(w.pairs[:0], w.bodies)

	w.cache.Persistence = w.CollisionPersistence
	w.cache.BeginStep()
	for _, pair := range w.pairs {
		if m, ok := Collide(pair.A, pair.B); ok {
			w.contacts = append(w.contacts, m)
			w.cache.Store(m)
		}
	}
	w.cache.EndStep()

	for i := range w.contacts {
		w.contacts[i].resolve()
		w.contacts[i].correctPositions(w.Slop, w.CorrectionPercent)
	}

	for range w.JointIterations {
		for _, joint := range w.distanceJoints {
			joint.applyImpulse()
		}
		for _, joint := range w.revoluteJoints {
			joint.applyImpulse()
		}
		for _, joint := range w.springJoints {
			joint.applyImpulse()
		}
	}

	w.cleanup()
	w.steps++
}

func (w *World) preStepJoints(dt float64) {
	for _, joint := range w.distanceJoints {
		if joint.bind(&w.arena) {
			joint.preStep(dt)
		}
	}
	for _, joint := range w.revoluteJoints {
		if joint.bind(&w.arena) {
			joint.preStep(dt)
		}
	}
	for _, joint := range w.springJoints {
		if joint.bind(&w.arena) {
			joint.preStep(dt)
		}
	}
}

// cleanup removes the bodies that left the bounds together with their joints,
// and any joint whose bodies no longer resolve.
func (w *World) cleanup() {
	var removed []BodyID
	if w.CullOutOfBounds {
		for _, body := range w.bodies {
			if w.outOfBounds(body.position) {
				w.logger.Debug("body left bounds", "body", body.id, "position", body.position)
				w.tombstone(body)
				removed = append(removed, body.id)
			}
		}
	}
	if len(removed) > 0 {
		w.compactBodies()
		for _, id := range removed {
			w.contacts = dropManifoldsOf(w.contacts, id)
			w.indicators = dropManifoldsOf(w.indicators, id)
		}
	}
	w.pruneJoints(removed)
}

func (w *World) outOfBounds(p vec.Vec2) bool {
	return p.X < w.Bounds.Min.X || p.X > w.Bounds.Max.X || p.Y < w.Bounds.Min.Y || p.Y > w.Bounds.Max.Y
}

// tombstone releases the body's handle. The body stays in w.bodies until compactBodies.
func (w *World) tombstone(body *Body) {
	body.removed = true
	w.arena.release(body.id)
	w.cache.RemoveBody(body.id)
}

func (w *World) compactBodies() {
	w.bodies = slices.DeleteFunc(w.bodies, func(b *Body) bool {
		return b.removed
	})
}

// pruneJoints drops joints attached to a removed body and joints whose bodies
// do not resolve anymore.
func (w *World) pruneJoints(removed []BodyID) {
	w.distanceJoints = pruneJointList(w, w.distanceJoints, "distance", removed)
	w.revoluteJoints = pruneJointList(w, w.revoluteJoints, "revolute", removed)
	w.springJoints = pruneJointList(w, w.springJoints, "spring", removed)
}

func pruneJointList[J Joint](w *World, joints []J, kind string, removed []BodyID) []J {
	return slices.DeleteFunc(joints, func(joint J) bool {
		a, b := joint.Bodies()
		for _, id := range removed {
			if joint.references(id) {
				w.logger.Debug("joint removed with body", "kind", kind, "bodyA", a, "bodyB", b)
				return true
			}
		}
		_, okA := w.arena.get(a)
		_, okB := w.arena.get(b)
		if !okA || !okB {
			w.logger.Warn("pruned orphaned joint", "kind", kind, "bodyA", a, "bodyB", b)
			return true
		}
		return false
	})
}

// RemoveBody removes the body with the given handle and every joint attached to it.
func (w *World) RemoveBody(id BodyID) error {
	body, ok := w.arena.get(id)
	if !ok {
		return fmt.Errorf("remove body %v: %w", id, ErrBodyNotFound)
	}
	w.tombstone(body)
	w.compactBodies()
	w.pruneJoints([]BodyID{id})
	w.contacts = dropManifoldsOf(w.contacts, id)
	w.indicators = dropManifoldsOf(w.indicators, id)
	return nil
}

func dropManifoldsOf(list []Manifold, id BodyID) []Manifold {
	return slices.DeleteFunc(list, func(m Manifold) bool {
		return m.BodyA.id == id || m.BodyB.id == id
	})
}

// RemoveJoint removes joint from the world. It returns false if the joint is not part of it.
func (w *World) RemoveJoint(joint Joint) bool {
	var found bool
	switch j := joint.(type) {
	case *DistanceJoint:
		w.distanceJoints, found = removeJoint(w.distanceJoints, j)
	case *RevoluteJoint:
		w.revoluteJoints, found = removeJoint(w.revoluteJoints, j)
	case *SpringJoint:
		w.springJoints, found = removeJoint(w.springJoints, j)
	}
	return found
}

func removeJoint[J comparable](joints []J, joint J) ([]J, bool) {
	i := slices.Index(joints, joint)
	if i < 0 {
		return joints, false
	}
	return slices.Delete(joints, i, i+1), true
}

// Clear removes every body, joint, contact and cached pair.
func (w *World) Clear() {
	for _, body := range w.bodies {
		body.removed = true
	}
	w.arena.clear()
	w.bodies = w.bodies[:0]
	w.distanceJoints = w.distanceJoints[:0]
	w.revoluteJoints = w.revoluteJoints[:0]
	w.springJoints = w.springJoints[:0]
	w.pairs = w.pairs[:0]
	w.contacts = w.contacts[:0]
	w.indicators = w.indicators[:0]
	w.cache.Clear()
	w.logger.Debug("world cleared")
}

// Body returns the body with the given handle.
func (w *World) Body(id BodyID) (*Body, bool) {
	return w.arena.get(id)
}

// Bodies returns the live bodies in insertion order. The slice is owned by the world.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// EachBody calls f for every live body in insertion order.
func (w *World) EachBody(f func(b *Body)) {
	for _, body := range w.bodies {
		f(body)
	}
}

// Contacts returns the manifolds of the last substep. The slice is reused by the next Update.
func (w *World) Contacts() []Manifold {
	return w.contacts
}

// Indicators returns the manifolds of the substep before the last one.
func (w *World) Indicators() []Manifold {
	return w.indicators
}

// DistanceJoints returns the distance joints in creation order.
func (w *World) DistanceJoints() []*DistanceJoint {
	return w.distanceJoints
}

// RevoluteJoints returns the revolute joints in creation order.
func (w *World) RevoluteJoints() []*RevoluteJoint {
	return w.revoluteJoints
}

// SpringJoints returns the spring joints in creation order.
func (w *World) SpringJoints() []*SpringJoint {
	return w.springJoints
}

// Joints returns every joint: distance joints first, then revolute, then spring.
func (w *World) Joints() []Joint {
	joints := make([]Joint, 0, len(w.distanceJoints)+len(w.revoluteJoints)+len(w.springJoints))
	for _, j := range w.distanceJoints {
		joints = append(joints, j)
	}
	for _, j := range w.revoluteJoints {
		joints = append(joints, j)
	}
	for _, j := range w.springJoints {
		joints = append(joints, j)
	}
	return joints
}

// Cache returns the manifold cache.
func (w *World) Cache() *ManifoldCache {
	return w.cache
}

// Steps returns the number of substeps run since the world was created.
func (w *World) Steps() uint64 {
	return w.steps
}

// PointQuery returns the bodies containing p, in insertion order.
func (w *World) PointQuery(p vec.Vec2) []*Body {
	var hits []*Body
	for _, body := range w.bodies {
		if body.AABB().ContainsPoint(p) && body.ContainsPoint(p) {
			hits = append(hits, body)
		}
	}
	return hits
}

// AABBQuery returns the bodies whose bounding box intersects bb, in insertion order.
func (w *World) AABBQuery(bb AABB) []*Body {
	var hits []*Body
	for _, body := range w.bodies {
		if body.AABB().Intersects(bb) {
			hits = append(hits, body)
		}
	}
	return hits
}
