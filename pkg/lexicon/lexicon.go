// Package lexicon implements the frequency-weighted lexicon: an
// open-addressed, linearly-probed hash map from code-point string to
// count, with rehash-on-load-factor, descending-frequency iteration,
// self-information cost queries, and a cheap prefix index.
//
// The table is a single owned slice of slots with linear probing and
// rehash-by-doubling, and keeps an intentionally non-canonical hash
// constant rather than a "stronger" hash, for bit-for-bit reproducible
// runs across versions.
package lexicon

import (
	"errors"
	"math"
	"sort"

	"github.com/bastiangx/lexhnd/internal/cps"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrLexiconFull is returned when an insert probes every slot without
// finding a home. The load-factor bound is supposed to make this
// unreachable; callers must treat it as an internal error.
var ErrLexiconFull = errors.New("lexicon: table full, rehash should have prevented this")

// DefaultInitialCapacity is the recommended starting table size.
const DefaultInitialCapacity = 1024

// DefaultLoadFactor is the recommended rehash threshold.
const DefaultLoadFactor = 0.70

type slot struct {
	occupied bool
	key      cps.String
	count    uint64
}

// Lexicon is a hash map from CPS key to count, with the derived
// quantities (T, per-key cost) the MDL model needs.
type Lexicon struct {
	slots      []slot
	occupancy  int
	total      uint64
	loadFactor float64

	trie      *patricia.Trie
	trieDirty bool
}

// Item is a (key, count) pair returned by ItemsSorted.
type Item struct {
	Key   cps.String
	Count uint64
}

// New creates an empty Lexicon with the given initial capacity and
// load factor. A capacity below 1 falls back to DefaultInitialCapacity,
// and a load factor outside (0, 1) falls back to DefaultLoadFactor.
func New(capacity int, loadFactor float64) *Lexicon {
	if capacity < 1 {
		capacity = DefaultInitialCapacity
	}
	if loadFactor <= 0 || loadFactor >= 1 {
		loadFactor = DefaultLoadFactor
	}
	return &Lexicon{
		slots:      make([]slot, capacity),
		loadFactor: loadFactor,
		trieDirty:  true,
	}
}

// hash is a non-canonical DJB2 variant: hsh = ((hsh<<5)*hsh) + c,
// seeded at 5381. Kept deliberately instead of fixed to canonical
// DJB2: the variant is retained only for reproducibility across runs,
// not because it is a better hash.
func hash(w cps.String) uint64 {
	var hsh uint64 = 5381
	for _, c := range w {
		hsh = (hsh<<5)*hsh + uint64(c)
	}
	return hsh
}

// Capacity returns the current table size.
func (l *Lexicon) Capacity() int { return len(l.slots) }

// Occupancy returns the number of distinct keys held.
func (l *Lexicon) Occupancy() int { return l.occupancy }

// Total returns T, the sum of all counts.
func (l *Lexicon) Total() uint64 { return l.total }

// GetCount returns the count for w, or 0 if absent.
func (l *Lexicon) GetCount(w cps.String) uint64 {
	if len(l.slots) == 0 {
		return 0
	}
	start := int(hash(w) % uint64(len(l.slots)))
	i := start
	for {
		s := &l.slots[i]
		if !s.occupied {
			return 0
		}
		if s.key.Equal(w) {
			return s.count
		}
		i++
		if i >= len(l.slots) {
			i = 0
		}
		if i == start {
			return 0
		}
	}
}

// Cost returns λ(w) = -log2(count(w)/T), or +Inf if w is absent or
// the lexicon is empty.
func (l *Lexicon) Cost(w cps.String) float64 {
	count := l.GetCount(w)
	if count == 0 || l.total == 0 {
		return math.Inf(1)
	}
	return -math.Log2(float64(count) / float64(l.total))
}

// Add inserts w with count k, or increments an existing entry's count
// by k. Rehashes (doubling capacity) if the post-insert load factor
// reaches the configured threshold.
func (l *Lexicon) Add(w cps.String, k uint64) error {
	if len(w) == 0 {
		return nil
	}
	if err := l.insert(w.Clone(), k); err != nil {
		return err
	}
	l.total += k
	l.trieDirty = true
	if float64(l.occupancy)/float64(len(l.slots)) >= l.loadFactor {
		return l.rehash()
	}
	return nil
}

// insert performs the probe sequence without touching l.total, so it
// can be reused verbatim by rehash (which re-derives total counts by
// re-adding the full amount carried by each slot).
func (l *Lexicon) insert(w cps.String, k uint64) error {
	start := int(hash(w) % uint64(len(l.slots)))
	i := start
	for {
		s := &l.slots[i]
		if !s.occupied {
			s.occupied = true
			s.key = w
			s.count = k
			l.occupancy++
			return nil
		}
		if s.key.Equal(w) {
			s.count += k
			return nil
		}
		i++
		if i >= len(l.slots) {
			i = 0
		}
		if i == start {
			return ErrLexiconFull
		}
	}
}

// rehash doubles capacity and reinserts every occupied slot via the
// probe sequence.
func (l *Lexicon) rehash() error {
	old := l.slots
	l.slots = make([]slot, len(old)*2)
	l.occupancy = 0
	for _, s := range old {
		if !s.occupied {
			continue
		}
		if err := l.insert(s.key, s.count); err != nil {
			return err
		}
	}
	return nil
}

// ItemsSorted returns every (key, count) pair in descending-count
// order. Ties are broken by ascending slot index, which is
// deterministic for a given sequence of inserts but observable only
// through count ordering, not key identity.
func (l *Lexicon) ItemsSorted() []Item {
	items := make([]Item, 0, l.occupancy)
	for _, s := range l.slots {
		if s.occupied {
			items = append(items, Item{Key: s.key, Count: s.count})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	return items
}

// Copy returns a fresh Lexicon with identical (key, count) pairs and
// total, independent of the receiver's backing storage.
func (l *Lexicon) Copy() *Lexicon {
	out := New(len(l.slots), l.loadFactor)
	for _, s := range l.slots {
		if s.occupied {
			_ = out.insert(s.key.Clone(), s.count)
		}
	}
	out.total = l.total
	out.trieDirty = true
	return out
}

// PrefixTrie lazily builds (and caches until the next Add) a
// patricia.Trie mirroring the occupied slots, keyed by each entry's
// UTF-8 encoding with the lexicon count as the trie item, giving
// callers fast prefix lookups over the lexicon's entries.
func (l *Lexicon) PrefixTrie() *patricia.Trie {
	if l.trie != nil && !l.trieDirty {
		return l.trie
	}
	trie := patricia.NewTrie()
	for _, s := range l.slots {
		if !s.occupied {
			continue
		}
		trie.Insert(patricia.Prefix(s.key.String()), s.count)
	}
	l.trie = trie
	l.trieDirty = false
	return trie
}
