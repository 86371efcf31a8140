package config

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/setanarut/sat2d"
	"github.com/setanarut/vec"
)

func (p Point) vec() vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

// Build creates the world described by the scene. The returned map resolves
// body names to handles; unnamed bodies are left out.
func (s Scene) Build(logger *log.Logger) (*sat2d.World, map[string]sat2d.BodyID, error) {
	w := sat2d.NewWorld(s.World.Gravity.vec())
	w.SetLogger(logger)
	s.World.apply(w)

	ids := make(map[string]sat2d.BodyID, len(s.Bodies))
	for i, bc := range s.Bodies {
		body, err := bc.create(w)
		if err != nil {
			return nil, nil, fmt.Errorf("config: body %d (%s): %w", i, bc.Name, err)
		}
		if bc.Name != "" {
			ids[bc.Name] = body.ID()
		}
	}

	for i, jc := range s.Joints {
		if err := jc.create(w, ids); err != nil {
			return nil, nil, fmt.Errorf("config: joint %d (%s): %w", i, jc.Type, err)
		}
	}

	w.Logger().Debug("scene built", "scene", s.Name, "bodies", w.BodyCount(), "joints", len(w.Joints()))
	return w, ids, nil
}

func (wc WorldConfig) apply(w *sat2d.World) {
	if wc.Slop > 0 {
		w.Slop = wc.Slop
	}
	if wc.CorrectionPercent > 0 {
		w.CorrectionPercent = wc.CorrectionPercent
	}
	if wc.JointIterations > 0 {
		w.JointIterations = wc.JointIterations
	}
	if wc.CollisionPersistence > 0 {
		w.CollisionPersistence = wc.CollisionPersistence
	}
	if wc.Bounds != nil {
		if wc.Bounds.Min != nil {
			w.Bounds.Min = wc.Bounds.Min.vec()
		}
		if wc.Bounds.Max != nil {
			w.Bounds.Max = wc.Bounds.Max.vec()
		}
	}
	if wc.CullOutOfBounds != nil {
		w.CullOutOfBounds = *wc.CullOutOfBounds
	}
	switch wc.BroadPhase {
	case "tree":
		w.BroadPhase = &sat2d.AABBTree{}
	case "brute":
		w.BroadPhase = sat2d.BruteForce{}
	}
}

func (bc BodyConfig) def() sat2d.BodyDef {
	def := sat2d.BodyDef{
		Position:        bc.Position.vec(),
		Velocity:        bc.Velocity.vec(),
		Angle:           bc.Angle,
		AngularVelocity: bc.AngularVelocity,
		Mass:            bc.Mass,
		Restitution:     sat2d.RestitutionFromMaterial,
		Static:          bc.Static,
		Material:        sat2d.ParseMaterial(bc.Material),
	}
	if bc.Restitution != nil {
		def.Restitution = *bc.Restitution
	}
	return def
}

func (bc BodyConfig) create(w *sat2d.World) (*sat2d.Body, error) {
	switch bc.Shape {
	case "circle":
		return w.CreateCircle(bc.Radius, bc.def()), nil
	case "box":
		return w.CreateBox(bc.Width, bc.Height, bc.def()), nil
	case "polygon":
		verts := make([]vec.Vec2, len(bc.Vertices))
		for i, p := range bc.Vertices {
			verts[i] = p.vec()
		}
		if bc.Hull {
			verts = sat2d.ConvexHull(verts, 0)
		}
		return w.CreatePolygon(verts, bc.def())
	default:
		return nil, fmt.Errorf("unknown shape %q", bc.Shape)
	}
}

func (jc JointConfig) create(w *sat2d.World, ids map[string]sat2d.BodyID) error {
	a, b := ids[jc.A], ids[jc.B]
	rest := sat2d.AutoRestLength
	if jc.RestLength != nil {
		rest = *jc.RestLength
	}

	var err error
	switch jc.Type {
	case "distance":
		_, err = w.CreateDistanceJoint(a, b, jc.AnchorA.vec(), jc.AnchorB.vec(), rest, jc.FrequencyHz, jc.DampingRatio)
	case "revolute":
		_, err = w.CreateRevoluteJoint(a, b, jc.AnchorA.vec(), jc.AnchorB.vec(), jc.BiasFactor, jc.Softness)
	case "spring":
		_, err = w.CreateSpringJoint(a, b, jc.AnchorA.vec(), jc.AnchorB.vec(), rest, jc.Stiffness, jc.Damping)
	default:
		err = fmt.Errorf("unknown joint type %q", jc.Type)
	}
	return err
}
