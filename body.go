package sat2d

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// BodyDef holds the initial state of a body passed to the World factories.
type BodyDef struct {
	Position        vec.Vec2
	Velocity        vec.Vec2
	Angle           float64 // radians
	AngularVelocity float64
	Mass            float64
	// Restitution is the coefficient of bounciness. Use RestitutionFromMaterial
	// (or any negative value) to take it from Material.
	Restitution float64
	Static      bool
	Material    Material
}

// Body is a rigid body owned by a World.
type Body struct {
	// UserData is an object that this body is associated with.
	//
	// You can use this get a reference to your game object or controller object.
	UserData any

	id      BodyID
	removed bool

	shape Shape

	position        vec.Vec2
	angle           float64 // radians
	velocity        vec.Vec2
	angularVelocity float64
	force           vec.Vec2 // accumulated for the next integration

	mass        float64
	invMass     float64
	moment      float64 // moment of inertia
	invMoment   float64
	density     float64
	area        float64
	restitution float64
	material    Material
	static      bool

	transformDirty bool
	worldVerts     []vec.Vec2
	aabbDirty      bool
	aabb           AABB
}

func newBody(shape Shape, def BodyDef) *Body {
	body := &Body{
		shape:           shape.clone(),
		position:        def.Position,
		angle:           def.Angle,
		velocity:        def.Velocity,
		angularVelocity: def.AngularVelocity,
		mass:            def.Mass,
		material:        def.Material,
		static:          def.Static,
	}
	if def.Restitution < 0 {
		body.restitution = def.Material.Restitution()
	} else {
		body.restitution = def.Restitution
	}
	if body.shape.Kind == ShapePolygon {
		body.recenter()
	}
	body.updateMassProperties()
	body.invalidate()
	return body
}

// String returns body id as string
func (b *Body) String() string {
	return fmt.Sprint("Body ", b.id, ", ", b.shape.Kind)
}

// ID returns the handle of the body inside its World.
func (b *Body) ID() BodyID {
	return b.id
}

// Removed reports whether the body has been removed from its World.
func (b *Body) Removed() bool {
	return b.removed
}

// Shape returns a copy of the body's geometry.
func (b *Body) Shape() Shape {
	return b.shape.clone()
}

// Kind returns the shape kind of the body.
func (b *Body) Kind() ShapeKind {
	return b.shape.Kind
}

// recenter re-expresses the vertices relative to their centroid and moves the
// body by the rotated centroid offset, so the world shape stays in place.
func (b *Body) recenter() {
	centroid := CentroidForPoly(b.shape.Vertices)
	if centroid == (vec.Vec2{}) {
		return
	}
	for i, v := range b.shape.Vertices {
		b.shape.Vertices[i] = v.Sub(centroid)
	}
	b.position = b.position.Add(rotate(centroid, b.angle))
	b.shape.updateExtents()
}

// updateMassProperties recomputes every quantity derived from mass and geometry.
func (b *Body) updateMassProperties() {
	switch b.shape.Kind {
	case ShapeCircle:
		b.area = AreaForCircle(b.shape.Radius)
		b.moment = MomentForCircle(b.mass, b.shape.Radius)
	default:
		b.area = AreaForPoly(b.shape.Vertices)
		b.moment = MomentForPoly(b.mass, b.shape.Vertices)
	}

	b.density = 0
	if b.area > 0 {
		b.density = b.mass / b.area
	}

	if b.static {
		b.invMass = 0
		b.invMoment = 0
		return
	}

	b.invMass = 0
	if b.mass > 0 {
		b.invMass = 1 / b.mass
	}
	b.invMoment = 0
	if b.moment > 0 {
		b.invMoment = 1 / b.moment
	}
}

func (b *Body) invalidate() {
	b.transformDirty = true
	b.aabbDirty = true
}

// integrate advances velocity with the accumulated force and position with the new velocity.
func (b *Body) integrate(dt float64) {
	if b.static {
		return
	}
	b.velocity = b.velocity.Add(b.force.Scale(b.invMass * dt))
	b.position = b.position.Add(b.velocity.Scale(dt))
	b.angle += b.angularVelocity * dt
	b.invalidate()
}

// Position returns the world position of the body's centroid.
func (b *Body) Position() vec.Vec2 {
	return b.position
}

// SetPosition sets the world position of the body's centroid.
func (b *Body) SetPosition(p vec.Vec2) {
	b.position = p
	b.invalidate()
}

// Move translates the body by delta.
func (b *Body) Move(delta vec.Vec2) {
	b.SetPosition(b.position.Add(delta))
}

// Angle returns the rotation of the body in radians.
func (b *Body) Angle() float64 {
	return b.angle
}

// SetAngle sets the angle of body.
func (b *Body) SetAngle(angle float64) {
	b.angle = angle
	b.invalidate()
}

// Rotate adds delta radians to the body's angle.
func (b *Body) Rotate(delta float64) {
	b.SetAngle(b.angle + delta)
}

// Velocity returns the linear velocity of the body.
func (b *Body) Velocity() vec.Vec2 {
	return b.velocity
}

// SetVelocity sets the linear velocity of the body.
func (b *Body) SetVelocity(v vec.Vec2) {
	b.velocity = v
}

// AngularVelocity returns the angular velocity of the body in radians per second.
func (b *Body) AngularVelocity() float64 {
	return b.angularVelocity
}

// SetAngularVelocity sets the angular velocity of the body.
func (b *Body) SetAngularVelocity(w float64) {
	b.angularVelocity = w
}

// Force returns the force accumulated for the next integration.
func (b *Body) Force() vec.Vec2 {
	return b.force
}

// ApplyForce adds f to the force used by the next integration.
func (b *Body) ApplyForce(f vec.Vec2) {
	b.force = b.force.Add(f)
}

// Mass returns mass of the body
func (b *Body) Mass() float64 {
	return b.mass
}

// SetMass sets mass of the body and recomputes the derived quantities.
func (b *Body) SetMass(mass float64) {
	b.mass = mass
	b.updateMassProperties()
}

// InvMass returns the inverse mass, zero for static or massless bodies.
func (b *Body) InvMass() float64 {
	return b.invMass
}

// Moment returns moment of inertia of the body.
func (b *Body) Moment() float64 {
	return b.moment
}

// InvMoment returns the inverse moment of inertia.
func (b *Body) InvMoment() float64 {
	return b.invMoment
}

// Density returns mass divided by area.
func (b *Body) Density() float64 {
	return b.density
}

// Area returns the area of the body's shape.
func (b *Body) Area() float64 {
	return b.area
}

// Restitution returns the coefficient of restitution.
func (b *Body) Restitution() float64 {
	return b.restitution
}

// SetRestitution sets the coefficient of restitution.
// A negative value takes it from the body's material.
func (b *Body) SetRestitution(e float64) {
	if e < 0 {
		e = b.material.Restitution()
	}
	b.restitution = e
}

// Material returns the material tag of the body.
func (b *Body) Material() Material {
	return b.material
}

// SetMaterial sets the material tag of the body. Restitution is left alone.
func (b *Body) SetMaterial(m Material) {
	b.material = m
}

// IsStatic returns true if the body is static.
func (b *Body) IsStatic() bool {
	return b.static
}

// SetStatic switches the body between static and dynamic.
func (b *Body) SetStatic(static bool) {
	b.static = static
	if static {
		b.velocity = vec.Vec2{}
		b.angularVelocity = 0
	}
	b.updateMassProperties()
}

// Radius returns the radius of a circle body and zero for the other kinds.
func (b *Body) Radius() float64 {
	if b.shape.Kind != ShapeCircle {
		return 0
	}
	return b.shape.Radius
}

// SetRadius turns the body into a circle of radius r.
func (b *Body) SetRadius(r float64) {
	b.shape = NewCircleShape(r)
	b.updateMassProperties()
	b.invalidate()
}

// SetBoxSize turns the body into an axis box of size w x h.
func (b *Body) SetBoxSize(w, h float64) {
	b.shape = NewBoxShape(w, h)
	b.updateMassProperties()
	b.invalidate()
}

// Vertices returns a copy of the local vertices, relative to the centroid.
func (b *Body) Vertices() []vec.Vec2 {
	return append([]vec.Vec2(nil), b.shape.Vertices...)
}

// SetVertices turns the body into a polygon. The vertices are recentered on
// their centroid and the body position is shifted to keep the shape in place.
func (b *Body) SetVertices(verts []vec.Vec2) error {
	shape, err := NewPolygonShape(verts)
	if err != nil {
		return err
	}
	b.shape = shape
	b.recenter()
	b.updateMassProperties()
	b.invalidate()
	return nil
}

// Transform returns the body space to world space transform.
func (b *Body) Transform() Transform {
	return NewTransformRigid(b.position, b.angle)
}

// TransformedVertices returns the world space vertices. The slice is cached
// until the body moves and must not be modified.
func (b *Body) TransformedVertices() []vec.Vec2 {
	if !b.shape.IsPolygon() {
		return nil
	}
	if b.transformDirty || len(b.worldVerts) != len(b.shape.Vertices) {
		t := b.Transform()
		if cap(b.worldVerts) < len(b.shape.Vertices) {
			b.worldVerts = make([]vec.Vec2, len(b.shape.Vertices))
		}
		b.worldVerts = b.worldVerts[:len(b.shape.Vertices)]
		for i, v := range b.shape.Vertices {
			b.worldVerts[i] = t.Apply(v)
		}
		b.transformDirty = false
	}
	return b.worldVerts
}

// AABB returns the world space bounding box, recomputed on first use after a change.
func (b *Body) AABB() AABB {
	if b.aabbDirty {
		if b.shape.Kind == ShapeCircle {
			b.aabb = NewAABBForCircle(b.position, b.shape.Radius)
		} else {
			b.aabb = NewAABBForPoints(b.TransformedVertices())
		}
		b.aabbDirty = false
	}
	return b.aabb
}

// LocalToWorld converts a point in body space to world space.
func (b *Body) LocalToWorld(p vec.Vec2) vec.Vec2 {
	return b.Transform().Apply(p)
}

// WorldToLocal converts a point in world space to body space.
func (b *Body) WorldToLocal(p vec.Vec2) vec.Vec2 {
	return NewTransformRigidInverse(b.Transform()).Apply(p)
}

// VelocityAtWorldPoint returns the velocity of the body at a point in world space.
func (b *Body) VelocityAtWorldPoint(p vec.Vec2) vec.Vec2 {
	r := p.Sub(b.position)
	return b.velocity.Add(perp(r).Scale(b.angularVelocity))
}

// ContainsPoint reports whether p lies inside the body's shape.
func (b *Body) ContainsPoint(p vec.Vec2) bool {
	if b.shape.Kind == ShapeCircle {
		return p.Distance(b.position) < b.shape.Radius
	}
	return polygonContains(b.TransformedVertices(), p)
}

// KineticEnergy returns the linear plus rotational kinetic energy of the body.
func (b *Body) KineticEnergy() float64 {
	if b.static {
		return 0
	}
	linear := 0.5 * b.mass * lengthSq(b.velocity)
	angular := 0.5 * b.moment * b.angularVelocity * b.angularVelocity
	return linear + angular
}

// polygonContains works for both windings of a convex polygon.
func polygonContains(verts []vec.Vec2, p vec.Vec2) bool {
	var sign float64
	for i, a := range verts {
		c := verts[(i+1)%len(verts)]
		cross := c.Sub(a).Cross(p.Sub(a))
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
		} else if math.Copysign(1, cross) != sign {
			return false
		}
	}
	return sign != 0
}
