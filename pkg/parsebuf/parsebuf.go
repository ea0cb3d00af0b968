// Package parsebuf implements the parse buffer: a single flat,
// growable arena of null-terminated code-point segments, threading
// segment streams between induction iterations. Push writes into the
// shared arena without a per-segment allocation; Pop returns an owned
// copy of each segment.
//
// It follows a push/grow-by-doubling/pop/clear shape over a
// CPS-segment arena rather than a raw byte arena.
package parsebuf

import "github.com/bastiangx/lexhnd/internal/cps"

// defaultCapacity is a starting arena size in code points; a single
// segment rarely exceeds a few hundred runes.
const defaultCapacity = 4096

// margin is the free-space threshold below which Push grows the
// buffer, so a single large push never runs the cursor off the end
// of the backing array mid-write.
const margin = 64

// terminator marks the end of a segment inside the arena. Segments are
// assumed to hold no NUL code point: Pop splits at every NUL, and
// wordlist.Load does not filter NULs out of corpus lines.
const terminator rune = 0

// Buffer is a flat arena of null-terminated segments. It is
// single-owner: one induction loop writes it, drains it by popping,
// then reuses it for the next pass.
type Buffer struct {
	data []rune
	pos  int
}

// New returns an empty Buffer with a small initial capacity.
func New() *Buffer {
	return &Buffer{data: make([]rune, defaultCapacity)}
}

// Push appends w followed by a terminator, growing the backing array
// by doubling if free space drops below margin.
func (b *Buffer) Push(w cps.String) {
	needed := len(w) + 1
	for len(b.data)-b.pos < needed+margin {
		grown := make([]rune, len(b.data)*2)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:], w)
	b.pos += len(w)
	b.data[b.pos] = terminator
	b.pos++
}

// Pop returns the last segment pushed and shrinks the write cursor to
// just past the previous terminator. Pop on an empty buffer returns
// nil.
func (b *Buffer) Pop() cps.String {
	if b.pos == 0 {
		return nil
	}
	end := b.pos - 1 // index of this segment's terminator
	start := end
	for start > 0 && b.data[start-1] != terminator {
		start--
	}
	seg := make(cps.String, end-start)
	copy(seg, b.data[start:end])
	b.pos = start
	return seg
}

// Clear resets the write cursor to 0 without releasing the backing
// array, so the same arena can be reused for the next pass.
func (b *Buffer) Clear() {
	b.pos = 0
}

// Len returns the number of code points (terminators included) the
// buffer currently holds; zero means it is fully drained.
func (b *Buffer) Len() int {
	return b.pos
}
