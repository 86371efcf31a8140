package sat2d

import (
	"github.com/setanarut/vec"
)

// Transform represents a rigid 2D transformation (rotation followed by
// translation) using a 2x3 matrix.
//
//	| a  c  tx |   -> X' = a * X + c * Y + tx
//	| b  d  ty |   -> Y' = b * X + d * Y + ty
//
// Bodies use it to move their local vertex list and joint anchors into
// world space.
type Transform struct {
	a, b, c, d, tx, ty float64
}

// NewTransformIdentity creates and returns an identity transformation.
func NewTransformIdentity() Transform {
	return Transform{1, 0, 0, 1, 0, 0}
}

// NewTransformRigid creates a transformation that rotates by rotation radians
// and then translates by translate.
func NewTransformRigid(translate vec.Vec2, rotation float64) Transform {
	rot := vec.ForAngle(rotation)
	return Transform{
		a: rot.X, b: rot.Y,
		c: -rot.Y, d: rot.X,
		tx: translate.X, ty: translate.Y,
	}
}

// NewTransformRigidInverse returns the inverse of a given rigid transformation.
func NewTransformRigidInverse(t Transform) Transform {
	return Transform{
		a: t.d, b: -t.b,
		c: -t.c, d: t.a,
		tx: t.c*t.ty - t.tx*t.d,
		ty: t.tx*t.b - t.a*t.ty,
	}
}

// Mult multiplies this and t2
func (t Transform) Mult(t2 Transform) Transform {
	return Transform{
		a: t.a*t2.a + t.c*t2.b, b: t.b*t2.a + t.d*t2.b,
		c: t.a*t2.c + t.c*t2.d, d: t.b*t2.c + t.d*t2.d,
		tx: t.a*t2.tx + t.c*t2.ty + t.tx,
		ty: t.b*t2.tx + t.d*t2.ty + t.ty,
	}
}

// Apply applies the transformation to a point.
func (t Transform) Apply(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: t.a*p.X + t.c*p.Y + t.tx,
		Y: t.b*p.X + t.d*p.Y + t.ty,
	}
}

// ApplyVector applies only the rotation part of the transformation to v.
func (t Transform) ApplyVector(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: t.a*v.X + t.c*v.Y,
		Y: t.b*v.X + t.d*v.Y,
	}
}

// Translation returns the translation column of t.
func (t Transform) Translation() vec.Vec2 {
	return vec.Vec2{X: t.tx, Y: t.ty}
}
