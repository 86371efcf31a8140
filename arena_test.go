package sat2d

import "testing"

func TestArenaReusesSlots(t *testing.T) {
	var arena bodyArena
	a := &Body{}
	b := &Body{}

	idA := arena.insert(a)
	idB := arena.insert(b)
	if idA == idB || a.id != idA || b.id != idB {
		t.Fatalf("handles %v %v", idA, idB)
	}

	if !arena.release(idA) {
		t.Fatal("release of a live handle failed")
	}
	if arena.release(idA) {
		t.Error("double release succeeded")
	}
	if _, ok := arena.get(idA); ok {
		t.Error("released handle resolves")
	}

	c := &Body{}
	idC := arena.insert(c)
	if idC.index != idA.index {
		t.Errorf("slot %d not reused, got %d", idA.index, idC.index)
	}
	if idC.gen != idA.gen+1 {
		t.Errorf("generation = %d, want %d", idC.gen, idA.gen+1)
	}
	if got, ok := arena.get(idA); ok || got != nil {
		t.Error("stale handle resolves to the new body")
	}
	if got, ok := arena.get(idC); !ok || got != c {
		t.Error("new handle does not resolve")
	}
	if arena.len() != 2 {
		t.Errorf("len = %d, want 2", arena.len())
	}
}

func TestArenaZeroHandle(t *testing.T) {
	var arena bodyArena
	arena.insert(&Body{})
	if _, ok := arena.get(BodyID{}); ok {
		t.Error("zero handle resolves")
	}
	if !(BodyID{}).IsZero() {
		t.Error("zero handle is not zero")
	}
	if _, ok := arena.get(BodyID{index: 7, gen: 1}); ok {
		t.Error("out of range handle resolves")
	}
}

func TestArenaClear(t *testing.T) {
	var arena bodyArena
	ids := []BodyID{arena.insert(&Body{}), arena.insert(&Body{}), arena.insert(&Body{})}
	arena.clear()
	if arena.len() != 0 {
		t.Errorf("len after clear = %d", arena.len())
	}
	for _, id := range ids {
		if _, ok := arena.get(id); ok {
			t.Errorf("%v resolves after clear", id)
		}
	}
	next := arena.insert(&Body{})
	if next.gen != 2 {
		t.Errorf("generation after clear = %d, want 2", next.gen)
	}
}

func TestBodyIDOrder(t *testing.T) {
	a := BodyID{index: 1, gen: 3}
	b := BodyID{index: 2, gen: 1}
	if !a.less(b) || b.less(a) {
		t.Error("handles are not ordered by slot")
	}
	if MakePairKey(b, a) != MakePairKey(a, b) {
		t.Error("pair key depends on argument order")
	}
	if a.String() != "1:3" {
		t.Errorf("String() = %q", a.String())
	}
}
