package sat2d

import (
	"errors"
	"fmt"
)

// ErrBodyNotFound is returned when a BodyID does not refer to a live body.
var ErrBodyNotFound = errors.New("sat2d: body not found")

// BodyID is a generational handle to a body stored in a World.
//
// A handle stays invalid after its body is removed, even when the slot is
// reused by a later body. The zero BodyID never refers to a body.
type BodyID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id is the zero handle.
func (id BodyID) IsZero() bool {
	return id.gen == 0
}

func (id BodyID) String() string {
	return fmt.Sprintf("%d:%d", id.index, id.gen)
}

// less orders handles by slot, then generation.
func (id BodyID) less(other BodyID) bool {
	if id.index != other.index {
		return id.index < other.index
	}
	return id.gen < other.gen
}

type arenaSlot struct {
	body *Body
	gen  uint32
}

// bodyArena resolves handles to bodies. Freed slots are reused with a bumped generation.
type bodyArena struct {
	slots []arenaSlot
	free  []uint32
}

func (a *bodyArena) insert(body *Body) BodyID {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, arenaSlot{})
	}
	slot := &a.slots[index]
	slot.gen++
	slot.body = body
	id := BodyID{index: index, gen: slot.gen}
	body.id = id
	return id
}

func (a *bodyArena) get(id BodyID) (*Body, bool) {
	if id.IsZero() || int(id.index) >= len(a.slots) {
		return nil, false
	}
	slot := a.slots[id.index]
	if slot.gen != id.gen || slot.body == nil {
		return nil, false
	}
	return slot.body, true
}

// release frees the slot of id. It returns false for stale handles.
func (a *bodyArena) release(id BodyID) bool {
	if _, ok := a.get(id); !ok {
		return false
	}
	a.slots[id.index].body = nil
	a.free = append(a.free, id.index)
	return true
}

func (a *bodyArena) clear() {
	for i := range a.slots {
		if a.slots[i].body != nil {
			a.slots[i].body = nil
			a.free = append(a.free, uint32(i))
		}
	}
}

func (a *bodyArena) len() int {
	return len(a.slots) - len(a.free)
}
