package sat2d

// PairKey identifies an unordered pair of bodies.
// MakePairKey(a, b) and MakePairKey(b, a) are equal.
type PairKey struct {
	A, B BodyID
}

// MakePairKey returns the canonical key of the pair a, b.
func MakePairKey(a, b BodyID) PairKey {
	if b.less(a) {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// Has reports whether id is one of the two bodies of the pair.
func (k PairKey) Has(id BodyID) bool {
	return k.A == id || k.B == id
}

// CachedManifold is the persistent record of a colliding pair.
type CachedManifold struct {
	Manifold
	// Active is true if the pair collided during the current step.
	Active bool
	// FramesLeft counts the steps the entry survives without a collision.
	FramesLeft int
}

// ManifoldCache tracks how long each pair of bodies has been in contact.
//
// Entries are iterated in the order their pairs first collided.
type ManifoldCache struct {
	// Persistence is the number of steps an entry survives without being refreshed.
	Persistence int

	entries map[PairKey]*CachedManifold
	keys    []PairKey
}

// NewManifoldCache returns an empty cache.
func NewManifoldCache(persistence int) *ManifoldCache {
	return &ManifoldCache{
		Persistence: persistence,
		entries:     make(map[PairKey]*CachedManifold),
	}
}

// BeginStep marks every entry inactive.
func (c *ManifoldCache) BeginStep() {
	for _, key := range c.keys {
		c.entries[key].Active = false
	}
}

// Store writes or refreshes the entry of m's pair.
func (c *ManifoldCache) Store(m Manifold) {
	key := m.Key()
	entry, ok := c.entries[key]
	if !ok {
		entry = &CachedManifold{}
		c.entries[key] = entry
		c.keys = append(c.keys, key)
	}
	entry.Manifold = m
	entry.Active = true
	entry.FramesLeft = c.Persistence
}

// EndStep ticks down inactive entries and evicts the expired ones.
func (c *ManifoldCache) EndStep() {
	c.filter(func(key PairKey, entry *CachedManifold) bool {
		if entry.Active {
			return true
		}
		entry.FramesLeft--
		return entry.FramesLeft > 0
	})
}

// Get returns the entry of the pair a, b.
func (c *ManifoldCache) Get(a, b BodyID) (*CachedManifold, bool) {
	entry, ok := c.entries[MakePairKey(a, b)]
	return entry, ok
}

// Len returns the number of cached pairs.
func (c *ManifoldCache) Len() int {
	return len(c.keys)
}

// Each calls f for every entry in insertion order.
func (c *ManifoldCache) Each(f func(key PairKey, entry *CachedManifold)) {
	for _, key := range c.keys {
		f(key, c.entries[key])
	}
}

// RemoveBody evicts every entry involving id.
func (c *ManifoldCache) RemoveBody(id BodyID) {
	c.filter(func(key PairKey, _ *CachedManifold) bool {
		return !key.Has(id)
	})
}

// Clear removes all entries.
func (c *ManifoldCache) Clear() {
	clear(c.entries)
	c.keys = c.keys[:0]
}

// filter keeps the entries for which keep returns true.
func (c *ManifoldCache) filter(keep func(PairKey, *CachedManifold) bool) {
	n := 0
	for _, key := range c.keys {
		if keep(key, c.entries[key]) {
			c.keys[n] = key
			n++
		} else {
			delete(c.entries, key)
		}
	}
	clear(c.keys[n:])
	c.keys = c.keys[:n]
}
