// Package alphabet tallies per-code-point frequency over a corpus and
// derives the self-information cost model the lexicon's prior is
// measured against.
//
// Counts live in a flat slice scanned linearly. A natural alphabet
// fits in the hundreds of entries, so linear scan beats building a
// second hash table for a structure this small.
package alphabet

import (
	"math"

	"github.com/bastiangx/lexhnd/internal/cps"
)

type entry struct {
	char  rune
	count uint64
}

// Alphabet is a read-only-after-construction tally of code-point
// frequencies, built once from a corpus and held for an entire
// induction run.
type Alphabet struct {
	entries []entry
	total   uint64
}

// resizeThreshold is the load fraction (of len/cap) past which the
// dense table grows by doubling.
const resizeThreshold = 0.8

// New returns an empty Alphabet with a small initial table.
func New() *Alphabet {
	return &Alphabet{entries: make([]entry, 0, 64)}
}

// Add increments n(c), inserting with n=1 if c is unseen.
func (a *Alphabet) Add(c rune) {
	for i := range a.entries {
		if a.entries[i].char == c {
			a.entries[i].count++
			a.total++
			return
		}
	}
	if len(a.entries) >= int(float64(cap(a.entries))*resizeThreshold) {
		grown := make([]entry, len(a.entries), max(cap(a.entries)*2, 1))
		copy(grown, a.entries)
		a.entries = grown
	}
	a.entries = append(a.entries, entry{char: c, count: 1})
	a.total++
}

// Ingest calls Add for every code point of every corpus string.
func (a *Alphabet) Ingest(corpus []cps.String) {
	for _, s := range corpus {
		for _, c := range s {
			a.Add(c)
		}
	}
}

// Count returns n(c), or 0 if c has never been seen.
func (a *Alphabet) Count(c rune) uint64 {
	for i := range a.entries {
		if a.entries[i].char == c {
			return a.entries[i].count
		}
	}
	return 0
}

// Total returns N, the sum of all counts.
func (a *Alphabet) Total() uint64 {
	return a.total
}

// Size returns the number of distinct code points seen.
func (a *Alphabet) Size() int {
	return len(a.entries)
}

// ForEach calls fn once per distinct code point, with its count.
func (a *Alphabet) ForEach(fn func(c rune, count uint64)) {
	for _, e := range a.entries {
		fn(e.char, e.count)
	}
}

// CharCost returns χ(c) = -log2(n(c)/N). Returns +Inf for an unknown
// code point; callers may treat that as the intended "infeasible"
// signal rather than an error.
func (a *Alphabet) CharCost(c rune) float64 {
	n := a.Count(c)
	if n == 0 || a.total == 0 {
		return math.Inf(1)
	}
	return -math.Log2(float64(n) / float64(a.total))
}

// WordCost returns χ(w), the sum of CharCost over w's code points, or
// +Inf if any code point is unknown.
func (a *Alphabet) WordCost(w cps.String) float64 {
	var sum float64
	for _, c := range w {
		cost := a.CharCost(c)
		if math.IsInf(cost, 1) {
			return math.Inf(1)
		}
		sum += cost
	}
	return sum
}
