package sat2d_test

import (
	"math/rand/v2"
	"testing"

	"github.com/setanarut/sat2d"
	"github.com/setanarut/vec"
)

func pairSet(pairs []sat2d.BodyPair) map[sat2d.PairKey]bool {
	set := make(map[sat2d.PairKey]bool, len(pairs))
	for _, p := range pairs {
		set[sat2d.MakePairKey(p.A.ID(), p.B.ID())] = true
	}
	return set
}

func randomWorld(seed uint64, n int) *sat2d.World {
	rng := rand.New(rand.NewPCG(seed, 7))
	w := sat2d.NewWorld(vec.Vec2{})
	for i := range n {
		def := sat2d.BodyDef{
			Position: vec.Vec2{X: rng.Float64() * 400, Y: rng.Float64() * 400},
			Angle:    rng.Float64() * 6,
			Mass:     1,
			Static:   i%5 == 0,
		}
		if i%2 == 0 {
			w.CreateCircle(5+rng.Float64()*20, def)
		} else {
			w.CreateBox(5+rng.Float64()*30, 5+rng.Float64()*30, def)
		}
	}
	return w
}

func TestBroadPhasesMatchBruteForce(t *testing.T) {
	strategies := []sat2d.BroadPhase{&sat2d.SweepAndPrune{}, &sat2d.AABBTree{}}
	for seed := range uint64(5) {
		w := randomWorld(seed, 80)
		want := pairSet(sat2d.BruteForce{}.Pairs(nil, w.Bodies()))

		for _, bp := range strategies {
			pairs := bp.Pairs(nil, w.Bodies())
			got := pairSet(pairs)
			if len(got) != len(pairs) {
				t.Errorf("seed %d: %T reported duplicate pairs", seed, bp)
			}
			for key := range want {
				if !got[key] {
					t.Errorf("seed %d: %T missed pair %v", seed, bp, key)
				}
			}
			for key := range got {
				if !want[key] {
					t.Errorf("seed %d: %T reported non-overlapping pair %v", seed, bp, key)
				}
			}
		}
	}
}

func TestAABBTreeReusesNodes(t *testing.T) {
	tree := &sat2d.AABBTree{}
	big := randomWorld(1, 50)
	small := randomWorld(2, 10)

	for _, w := range []*sat2d.World{big, small, big} {
		want := pairSet(sat2d.BruteForce{}.Pairs(nil, w.Bodies()))
		got := pairSet(tree.Pairs(nil, w.Bodies()))
		if len(got) != len(want) {
			t.Errorf("tree found %d pairs, brute force %d", len(got), len(want))
		}
	}
	if pairs := tree.Pairs(nil, nil); len(pairs) != 0 {
		t.Errorf("empty input gave %d pairs", len(pairs))
	}
}

func TestBroadPhaseSkipsStaticPairs(t *testing.T) {
	w := sat2d.NewWorld(vec.Vec2{})
	w.CreateBox(100, 20, sat2d.BodyDef{Position: vec.Vec2{X: 100, Y: 100}, Static: true})
	w.CreateBox(20, 100, sat2d.BodyDef{Position: vec.Vec2{X: 100, Y: 100}, Static: true})

	for _, bp := range []sat2d.BroadPhase{&sat2d.SweepAndPrune{}, &sat2d.AABBTree{}, sat2d.BruteForce{}} {
		if pairs := bp.Pairs(nil, w.Bodies()); len(pairs) != 0 {
			t.Errorf("%T reported %d static pairs", bp, len(pairs))
		}
	}

	w.Update(1.0/60.0, 4)
	if len(w.Contacts()) != 0 || w.Cache().Len() != 0 {
		t.Errorf("static bodies produced %d contacts, %d cached pairs", len(w.Contacts()), w.Cache().Len())
	}
}

func TestBroadPhasesAreDeterministic(t *testing.T) {
	w := randomWorld(42, 60)
	for _, bp := range []sat2d.BroadPhase{&sat2d.SweepAndPrune{}, &sat2d.AABBTree{}} {
		first := bp.Pairs(nil, w.Bodies())
		second := bp.Pairs(nil, w.Bodies())
		if len(first) != len(second) {
			t.Fatalf("%T: pair counts differ: %d and %d", bp, len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("%T: pair %d differs: %v and %v", bp, i, first[i], second[i])
			}
		}
	}
}

func TestWorldWithAABBTree(t *testing.T) {
	w := sat2d.NewWorld(vec.Vec2{})
	w.BroadPhase = &sat2d.AABBTree{}
	a := w.CreateCircle(10, sat2d.BodyDef{Position: vec.Vec2{X: 100, Y: 100}, Velocity: vec.Vec2{X: 5}, Mass: 1, Restitution: 1})
	b := w.CreateCircle(10, sat2d.BodyDef{Position: vec.Vec2{X: 119, Y: 100}, Velocity: vec.Vec2{X: -5}, Mass: 1, Restitution: 1})

	w.Update(1.0/60.0, 1)
	if a.Velocity().X != -5 || b.Velocity().X != 5 {
		t.Errorf("velocities %v %v, want swapped", a.Velocity(), b.Velocity())
	}
}
