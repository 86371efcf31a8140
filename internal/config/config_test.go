package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/setanarut/sat2d"
)

func TestBuiltins(t *testing.T) {
	want := []string{"drop", "newton", "pendulum", "stack"}
	if got := Builtins(); !slices.Equal(got, want) {
		t.Fatalf("Builtins() = %v, want %v", got, want)
	}
}

func TestBuiltinScenesBuild(t *testing.T) {
	for _, name := range Builtins() {
		t.Run(name, func(t *testing.T) {
			scene, err := Load(name)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if scene.Name != name {
				t.Errorf("name = %q, want %q", scene.Name, name)
			}
			w, ids, err := scene.Build(nil)
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			if w.BodyCount() != len(scene.Bodies) {
				t.Errorf("world has %d bodies, scene %d", w.BodyCount(), len(scene.Bodies))
			}
			if len(w.Joints()) != len(scene.Joints) {
				t.Errorf("world has %d joints, scene %d", len(w.Joints()), len(scene.Joints))
			}
			for name, id := range ids {
				if _, ok := w.Body(id); !ok {
					t.Errorf("body %q does not resolve", name)
				}
			}
			w.Update(scene.Run.DT, scene.Run.Iterations)
		})
	}
}

func TestStackSceneUsesHull(t *testing.T) {
	scene, err := Load("stack")
	if err != nil {
		t.Fatal(err)
	}
	w, ids, err := scene.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	capBody, ok := w.Body(ids["cap"])
	if !ok {
		t.Fatal("cap missing")
	}
	if n := len(capBody.Vertices()); n != 3 {
		t.Errorf("cap has %d vertices, want 3", n)
	}
	if capBody.Kind() != sat2d.ShapePolygon {
		t.Errorf("cap kind = %v", capBody.Kind())
	}
	if _, ok := w.BroadPhase.(*sat2d.AABBTree); !ok {
		t.Errorf("broad phase = %T, want *AABBTree", w.BroadPhase)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
world:
  gravity: {x: 0, y: 10}
  broad_phase: brute
  cull_out_of_bounds: false
  bounds:
    max: {x: 500, y: 500}
bodies:
  - {name: a, shape: circle, radius: 5, mass: 1, material: rubber}
  - {name: b, shape: circle, radius: 5, mass: 1, restitution: 0.1, position: {x: 30, y: 0}}
joints:
  - {type: revolute, a: a, b: b, anchor_a: {x: 15, y: 0}, anchor_b: {x: -15, y: 0}}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	scene, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if scene.Name != "custom" {
		t.Errorf("name = %q, want custom", scene.Name)
	}
	if scene.Run.Steps != DefaultSteps || scene.Run.DT != DefaultDT || scene.Run.Iterations != DefaultIterations {
		t.Errorf("run defaults not applied: %+v", scene.Run)
	}
	if scene.Joints[0].BiasFactor != DefaultBiasFactor {
		t.Errorf("bias factor = %v", scene.Joints[0].BiasFactor)
	}

	w, ids, err := scene.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := w.BroadPhase.(sat2d.BruteForce); !ok {
		t.Errorf("broad phase = %T", w.BroadPhase)
	}
	if w.CullOutOfBounds {
		t.Error("culling still enabled")
	}
	if w.Bounds.Max.X != 500 || w.Bounds.Min != sat2d.DefaultBounds.Min {
		t.Errorf("bounds = %v", w.Bounds)
	}
	a, _ := w.Body(ids["a"])
	b, _ := w.Body(ids["b"])
	if a.Restitution() != sat2d.MaterialRubber.Restitution() {
		t.Errorf("a restitution = %v, want the rubber default", a.Restitution())
	}
	if b.Restitution() != 0.1 {
		t.Errorf("b restitution = %v, want 0.1", b.Restitution())
	}
}

func TestLoadUnknownScene(t *testing.T) {
	_, err := Load("no-such-scene")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("err = %v, want ErrUnknownScene", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "bodies: [", "failed to parse"},
		{"unknown shape", "bodies: [{shape: star}]", `unknown shape "star"`},
		{"zero radius", "bodies: [{name: c, shape: circle}]", "positive radius"},
		{"flat box", "bodies: [{shape: box, width: 1}]", "positive width"},
		{"small polygon", "bodies: [{shape: polygon, vertices: [{x: 0, y: 0}, {x: 1, y: 0}]}]", "at least 3 vertices"},
		{"duplicate name", "bodies: [{name: a, shape: circle, radius: 1}, {name: a, shape: circle, radius: 1}]", "duplicate name"},
		{"unknown joint", "bodies: [{name: a, shape: circle, radius: 1}]\njoints: [{type: weld, a: a, b: a}]", `unknown type "weld"`},
		{"missing body", "bodies: [{name: a, shape: circle, radius: 1}]\njoints: [{type: spring, a: a, b: z}]", `unknown body "z"`},
		{"same body", "bodies: [{name: a, shape: circle, radius: 1}]\njoints: [{type: spring, a: a, b: a}]", "both ends"},
		{"broad phase", "world: {broad_phase: grid}", `unknown broad phase "grid"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "test")
			if err == nil {
				t.Fatal("Parse() succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.HasPrefix(err.Error(), "config: ") {
				t.Errorf("err = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
