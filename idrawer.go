package sat2d

import (
	"github.com/setanarut/vec"
)

// Draw flags
const (
	DrawShapes          = 1 << 0
	DrawConstraints     = 1 << 1
	DrawCollisionPoints = 1 << 2
	// DrawIndicators draws the contact points of the previous substep.
	DrawIndicators = 1 << 3
	DrawAABBs      = 1 << 4
)

// FColor is an RGBA color with components in [0, 1].
type FColor struct {
	R, G, B, A float32
}

// Drawer renders the primitives requested by DrawWorld.
type Drawer interface {
	DrawCircle(pos vec.Vec2, angle, radius float64, outline, fill FColor, data any)
	DrawSegment(a, b vec.Vec2, fill FColor, data any)
	DrawPolygon(verts []vec.Vec2, outline, fill FColor, data any)
	DrawDot(size float64, pos vec.Vec2, fill FColor, data any)

	Flags() uint
	OutlineColor() FColor
	BodyColor(body *Body, data any) FColor
	ConstraintColor() FColor
	CollisionPointColor() FColor
	Data() any
}

// DrawBody draws a body with the drawer implementation
func DrawBody(body *Body, drawer Drawer) {
	data := drawer.Data()
	outline := drawer.OutlineColor()
	fill := drawer.BodyColor(body, data)

	switch body.shape.Kind {
	case ShapeCircle:
		drawer.DrawCircle(body.position, body.angle, body.shape.Radius, outline, fill, data)
	default:
		drawer.DrawPolygon(body.TransformedVertices(), outline, fill, data)
	}
}

var springVerts = []vec.Vec2{
	{X: 0.00, Y: 0.0},
	{X: 0.20, Y: 0.0},
	{X: 0.25, Y: 3.0},
	{X: 0.30, Y: -6.0},
	{X: 0.35, Y: 6.0},
	{X: 0.40, Y: -6.0},
	{X: 0.45, Y: 6.0},
	{X: 0.50, Y: -6.0},
	{X: 0.55, Y: 6.0},
	{X: 0.60, Y: -6.0},
	{X: 0.65, Y: 6.0},
	{X: 0.70, Y: -3.0},
	{X: 0.75, Y: 6.0},
	{X: 0.80, Y: 0.0},
	{X: 1.00, Y: 0.0},
}

// DrawJoint draws a joint with the drawer implementation
func DrawJoint(joint Joint, drawer Drawer) {
	data := drawer.Data()
	color := drawer.ConstraintColor()

	a, b := joint.WorldAnchors()

	switch joint.(type) {
	case *DistanceJoint:
		drawer.DrawDot(5, a, color, data)
		drawer.DrawDot(5, b, color, data)
		drawer.DrawSegment(a, b, color, data)
	case *RevoluteJoint:
		drawer.DrawDot(5, a, color, data)
		drawer.DrawDot(5, b, color, data)
	case *SpringJoint:
		drawer.DrawDot(5, a, color, data)
		drawer.DrawDot(5, b, color, data)

		delta := b.Sub(a)
		length := delta.Mag()
		if length == 0 {
			return
		}
		cos := delta.X
		sin := delta.Y
		s := 1.0 / length

		r1 := vec.Vec2{X: cos, Y: -sin * s}
		r2 := vec.Vec2{X: sin, Y: cos * s}

		verts := make([]vec.Vec2, len(springVerts))
		for i, vt := range springVerts {
			verts[i] = vec.Vec2{X: vt.Dot(r1) + a.X, Y: vt.Dot(r2) + a.Y}
		}
		for i := 0; i < len(verts)-1; i++ {
			drawer.DrawSegment(verts[i], verts[i+1], color, data)
		}
	}
}

// DrawWorld draws the world with the drawer implementation, as selected by drawer.Flags().
func DrawWorld(w *World, drawer Drawer) {
	flags := drawer.Flags()
	data := drawer.Data()

	if flags&DrawShapes != 0 {
		for _, body := range w.bodies {
			DrawBody(body, drawer)
		}
	}

	if flags&DrawAABBs != 0 {
		outline := drawer.OutlineColor()
		for _, body := range w.bodies {
			bb := body.AABB()
			drawer.DrawPolygon([]vec.Vec2{
				bb.Min,
				{X: bb.Max.X, Y: bb.Min.Y},
				bb.Max,
				{X: bb.Min.X, Y: bb.Max.Y},
			}, outline, FColor{}, data)
		}
	}

	if flags&DrawConstraints != 0 {
		for _, joint := range w.Joints() {
			DrawJoint(joint, drawer)
		}
	}

	if flags&DrawIndicators != 0 {
		drawContacts(w.indicators, drawer)
	}
	if flags&DrawCollisionPoints != 0 {
		drawContacts(w.contacts, drawer)
	}
}

func drawContacts(manifolds []Manifold, drawer Drawer) {
	data := drawer.Data()
	color := drawer.CollisionPointColor()
	for i := range manifolds {
		m := &manifolds[i]
		for _, p := range m.Points() {
			drawer.DrawSegment(p.Sub(m.Normal.Scale(2)), p.Add(m.Normal.Scale(2)), color, data)
			drawer.DrawDot(3, p, color, data)
		}
	}
}
