// Package minseg implements the minimum-cost segmentation engine: a
// forward dynamic-programming pass that fills in the best-cost
// predecessor for every prefix length, followed by a backward
// reconstruction that emits the chosen segment sequence.
//
// It keeps a two-function shape (a forward pass that rebuilds each
// candidate substring in an O(n^2) double loop, and a separate
// backtrack that walks chosen[] and reverses) rather than a
// Viterbi-with-pointers rewrite.
package minseg

import (
	"errors"
	"math"

	"github.com/bastiangx/lexhnd/internal/cps"
	"github.com/bastiangx/lexhnd/pkg/lexicon"
)

// DefaultMaxLength is the recommended ceiling on an input string's
// code-point length. Callers must pre-split any longer input.
const DefaultMaxLength = 200

// ErrInputTooLong is returned when s exceeds the configured ceiling.
var ErrInputTooLong = errors.New("minseg: input exceeds maximum segmentation length")

// Result is the outcome of segmenting one string: the chosen
// left-to-right segments and their total cost under the lexicon.
type Result struct {
	Segments []cps.String
	Cost     float64
}

// Segment computes the cheapest concatenation of lexicon entries
// forming s. Unknown substrings cost +Inf so any finite-cost
// segmentation is preferred; if none exists, Cost is +Inf and
// Segments is still a partition of s: every position no candidate
// improved keeps its seeded single-code-point segment, and the other
// positions keep the candidate the DP chose there.
func Segment(lex *lexicon.Lexicon, s cps.String, maxLength int) (Result, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	n := len(s)
	if n > maxLength {
		return Result{}, ErrInputTooLong
	}
	if n == 0 {
		return Result{Segments: nil, Cost: 0}, nil
	}

	cost := make([]float64, n+1)
	chosen := make([]cps.String, n)
	for i := 1; i <= n; i++ {
		cost[i] = math.Inf(1)
		// Seed a degenerate default so a partition always exists even
		// when every candidate substring costs +Inf.
		chosen[i-1] = s[i-1 : i]
	}

	for i := 1; i <= n; i++ {
		for j := 0; j < i; j++ {
			candidate := s[j:i]
			c := cost[j] + lex.Cost(candidate)
			if c < cost[i] {
				cost[i] = c
				chosen[i-1] = candidate
			}
		}
	}

	return Result{Segments: backtrack(chosen), Cost: cost[n]}, nil
}

// backtrack walks chosen from the end, jumping back by each segment's
// code-point length, then reverses the emitted list to restore
// left-to-right order.
func backtrack(chosen []cps.String) []cps.String {
	n := len(chosen)
	if n == 0 {
		return nil
	}
	var segments []cps.String
	pos := n - 1
	for pos >= 0 {
		w := chosen[pos]
		segments = append(segments, w)
		pos -= len(w)
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return segments
}
