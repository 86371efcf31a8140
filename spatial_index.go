package sat2d

import (
	"slices"
)

// BodyPair is a candidate collision pair produced by a BroadPhase.
type BodyPair struct {
	A, B *Body
}

// BroadPhase reduces the set of bodies to the pairs whose bounds may overlap.
//
// Implementations must be conservative: every pair whose AABBs overlap has to
// be reported. The narrow phase validates the rest. Pairs of two static bodies
// are never reported. Output order must be deterministic for a given input order.
type BroadPhase interface {
	// Pairs appends the candidate pairs of bodies to dst and returns it.
	Pairs(dst []BodyPair, bodies []*Body) []BodyPair
}

type sweepEntry struct {
	body                   *Body
	minX, maxX, minY, maxY float64
}

// SweepAndPrune sorts bodies by the left edge of their bounds and scans
// forward while the x intervals overlap.
type SweepAndPrune struct {
	entries []sweepEntry
}

// Pairs implements BroadPhase.
func (sp *SweepAndPrune) Pairs(dst []BodyPair, bodies []*Body) []BodyPair {
	sp.entries = sp.entries[:0]
	for _, body := range bodies {
		bb := body.AABB()
		sp.entries = append(sp.entries, sweepEntry{
			body: body,
			minX: bb.Min.X, maxX: bb.Max.X,
			minY: bb.Min.Y, maxY: bb.Max.Y,
		})
	}

	// Stable so that equal keys keep insertion order.
	slices.SortStableFunc(sp.entries, func(a, b sweepEntry) int {
		switch {
		case a.minX < b.minX:
			return -1
		case a.minX > b.minX:
			return 1
		}
		return 0
	})

	for i := range sp.entries {
		a := &sp.entries[i]
		for j := i + 1; j < len(sp.entries); j++ {
			b := &sp.entries[j]
			if b.minX > a.maxX {
				break
			}
			if a.body.static && b.body.static {
				continue
			}
			if a.maxY < b.minY || b.maxY < a.minY {
				continue
			}
			dst = append(dst, BodyPair{A: a.body, B: b.body})
		}
	}
	return dst
}

// BruteForce tests every pair of bodies. It is quadratic and mostly useful as
// a reference for other strategies.
type BruteForce struct{}

// Pairs implements BroadPhase.
func (BruteForce) Pairs(dst []BodyPair, bodies []*Body) []BodyPair {
	for i, a := range bodies {
		for _, b := range bodies[i+1:] {
			if a.static && b.static {
				continue
			}
			if a.AABB().Intersects(b.AABB()) {
				dst = append(dst, BodyPair{A: a, B: b})
			}
		}
	}
	return dst
}
