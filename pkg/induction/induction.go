// Package induction implements the MDL induction loop: iteration-0
// bootstrap from a corpus alphabet, then iteration-N refinement that
// proposes joins from the previous segmentation, retains the most
// frequent ones, and resegments twice per iteration.
package induction

import (
	"errors"

	"github.com/bastiangx/lexhnd/internal/cps"
	"github.com/bastiangx/lexhnd/internal/logger"
	"github.com/bastiangx/lexhnd/pkg/alphabet"
	"github.com/bastiangx/lexhnd/pkg/lexicon"
	"github.com/bastiangx/lexhnd/pkg/minseg"
	"github.com/bastiangx/lexhnd/pkg/parsebuf"
	"github.com/charmbracelet/log"
)

// ErrCorpusEntryTooLong is returned when a corpus string exceeds the
// configured minseg length ceiling. The loop rejects the whole corpus
// before iterating rather than failing partway through.
var ErrCorpusEntryTooLong = errors.New("induction: corpus entry exceeds minseg length ceiling")

// Options configures a Run. Zero-value Iterations, LexiconCapacity,
// LoadFactor, MinsegMaxLength, JoinCeiling and Logger fall back to the
// package's recommended defaults. NewWordsPerIter falls back to 25 only
// when negative (zero admits no new words), and PairJoinBootstrap is
// used as given (false pushes raw segments at iteration 0).
type Options struct {
	Iterations        int
	NewWordsPerIter   int
	LexiconCapacity   int
	LoadFactor        float64
	MinsegMaxLength   int
	JoinCeiling       int
	PairJoinBootstrap bool
	Logger            *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = 15
	}
	if o.NewWordsPerIter < 0 {
		o.NewWordsPerIter = 25
	}
	if o.LexiconCapacity <= 0 {
		o.LexiconCapacity = lexicon.DefaultInitialCapacity
	}
	if o.LoadFactor <= 0 {
		o.LoadFactor = lexicon.DefaultLoadFactor
	}
	if o.MinsegMaxLength <= 0 {
		o.MinsegMaxLength = minseg.DefaultMaxLength
	}
	if o.JoinCeiling <= 0 {
		o.JoinCeiling = cps.MaxJoinLength
	}
	if o.Logger == nil {
		o.Logger = logger.Default("induction")
	}
	return o
}

// Result holds one lexicon, prior, and posterior per iteration, in
// three parallel arrays.
type Result struct {
	Lexicons   []*lexicon.Lexicon
	Priors     []float64
	Posteriors []float64
}

// Run executes the full induction loop over corpus for the configured
// number of iterations. No partial result is ever returned: any
// error aborts the whole run.
func Run(corpus []cps.String, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	for _, s := range corpus {
		if len(s) > opts.MinsegMaxLength {
			return nil, ErrCorpusEntryTooLong
		}
	}

	alpha := alphabet.New()
	alpha.Ingest(corpus)
	log.Debugf("alphabet built: %d distinct code points, N=%d", alpha.Size(), alpha.Total())

	buf := parsebuf.New()
	joinBuf := make([]rune, opts.JoinCeiling)

	result := &Result{
		Lexicons:   make([]*lexicon.Lexicon, 0, opts.Iterations),
		Priors:     make([]float64, 0, opts.Iterations),
		Posteriors: make([]float64, 0, opts.Iterations),
	}

	l0, prior0, err := bootstrap(alpha, opts.LexiconCapacity, opts.LoadFactor)
	if err != nil {
		return nil, err
	}
	posterior0, err := resegment(l0, corpus, opts.MinsegMaxLength, func(segments []cps.String) {
		if opts.PairJoinBootstrap {
			pushPairJoined(buf, segments, joinBuf)
		} else {
			pushRaw(buf, segments)
		}
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("iteration 0: prior=%.4f posterior=%.4f", prior0, posterior0)
	result.Lexicons = append(result.Lexicons, l0)
	result.Priors = append(result.Priors, prior0)
	result.Posteriors = append(result.Posteriors, posterior0)

	prev := l0
	for i := 1; i < opts.Iterations; i++ {
		li, priori, posteriori, err := refine(prev, corpus, alpha, buf, joinBuf, opts, log)
		if err != nil {
			return nil, err
		}
		log.Debugf("iteration %d: prior=%.4f posterior=%.4f", i, priori, posteriori)
		result.Lexicons = append(result.Lexicons, li)
		result.Priors = append(result.Priors, priori)
		result.Posteriors = append(result.Posteriors, posteriori)
		prev = li
	}

	return result, nil
}

// bootstrap builds L0 from the alphabet: one entry per code point,
// counted n(c), and prior0 = sum of chi(c) over the alphabet.
func bootstrap(alpha *alphabet.Alphabet, capacity int, loadFactor float64) (*lexicon.Lexicon, float64, error) {
	l0 := lexicon.New(capacity, loadFactor)
	var prior float64
	var addErr error
	alpha.ForEach(func(c rune, count uint64) {
		if addErr != nil {
			return
		}
		key := cps.String{c}
		if err := l0.Add(key, count); err != nil {
			addErr = err
			return
		}
		prior += alpha.WordCost(key)
	})
	if addErr != nil {
		return nil, 0, addErr
	}
	return l0, prior, nil
}

// resegment runs minseg over every corpus entry under lex, accumulates
// the total posterior cost, and invokes emit with each entry's chosen
// segmentation (for the caller to push into the next pool).
func resegment(lex *lexicon.Lexicon, corpus []cps.String, maxLength int, emit func(segments []cps.String)) (float64, error) {
	var posterior float64
	for _, s := range corpus {
		res, err := minseg.Segment(lex, s, maxLength)
		if err != nil {
			return 0, err
		}
		posterior += res.Cost
		emit(res.Segments)
	}
	return posterior, nil
}

// refine performs one iteration N >= 1: drain candidates, augment a
// temporary lexicon, resegment pass 1 to discover which
// units pay for themselves, derive Li from what survives, compute
// priori, then resegment pass 2 for the reportable posterior and the
// pair-joined seed of the next iteration.
func refine(
	prev *lexicon.Lexicon,
	corpus []cps.String,
	alpha *alphabet.Alphabet,
	buf *parsebuf.Buffer,
	joinBuf []rune,
	opts Options,
	log *log.Logger,
) (*lexicon.Lexicon, float64, float64, error) {
	candidates := lexicon.New(opts.LexiconCapacity, opts.LoadFactor)
	for buf.Len() > 0 {
		seg := buf.Pop()
		if err := candidates.Add(seg, 1); err != nil {
			return nil, 0, 0, err
		}
	}

	items := candidates.ItemsSorted()
	k := opts.NewWordsPerIter
	if k > len(items) {
		k = len(items)
	}
	augmented := prev.Copy()
	for idx := 0; idx < k; idx++ {
		if err := augmented.Add(items[idx].Key, items[idx].Count); err != nil {
			return nil, 0, 0, err
		}
	}
	log.Debugf("promoted %d/%d candidate joins", k, len(items))

	buf.Clear()
	for _, s := range corpus {
		res, err := minseg.Segment(augmented, s, opts.MinsegMaxLength)
		if err != nil {
			return nil, 0, 0, err
		}
		pushRaw(buf, res.Segments)
	}

	li := lexicon.New(opts.LexiconCapacity, opts.LoadFactor)
	for buf.Len() > 0 {
		seg := buf.Pop()
		if err := li.Add(seg, 1); err != nil {
			return nil, 0, 0, err
		}
	}

	var priori float64
	for _, item := range li.ItemsSorted() {
		priori += alpha.WordCost(item.Key)
	}

	buf.Clear()
	posteriori, err := resegment(li, corpus, opts.MinsegMaxLength, func(segments []cps.String) {
		pushPairJoined(buf, segments, joinBuf)
	})
	if err != nil {
		return nil, 0, 0, err
	}

	return li, priori, posteriori, nil
}

// pushRaw pushes every segment into buf unjoined. Used by iteration-N
// pass 1, whose segments build Li, and by iteration 0's bootstrap when
// PairJoinBootstrap is false.
func pushRaw(buf *parsebuf.Buffer, segments []cps.String) {
	for _, seg := range segments {
		buf.Push(seg)
	}
}

// pushPairJoined pushes the concatenation of successive segment pairs
// (2j, 2j+1); an unpaired trailing segment is pushed alone. A pair
// whose join would exceed the ceiling is dropped rather than
// truncated.
func pushPairJoined(buf *parsebuf.Buffer, segments []cps.String, joinBuf []rune) {
	i := 0
	for i+1 < len(segments) {
		joined, ok := cps.Join(joinBuf, segments[i], segments[i+1])
		if ok {
			buf.Push(joined)
		}
		i += 2
	}
	if i < len(segments) {
		buf.Push(segments[i])
	}
}
