package induction

import (
	"strings"
	"testing"

	"github.com/bastiangx/lexhnd/internal/cps"
)

func toCorpus(words ...string) []cps.String {
	out := make([]cps.String, len(words))
	for i, w := range words {
		out[i] = cps.FromString(w)
	}
	return out
}

func TestSingleLetterLexiconBootstrap(t *testing.T) {
	// A corpus of repeated two-letter strings should bootstrap a
	// single-letter L0 with equal counts for each letter.
	corpus := toCorpus("ab", "ab", "ab")
	res, err := Run(corpus, Options{Iterations: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Lexicons) != 1 {
		t.Fatalf("len(Lexicons) = %d, want 1", len(res.Lexicons))
	}
	l0 := res.Lexicons[0]
	if l0.GetCount(cps.FromString("a")) != 3 || l0.GetCount(cps.FromString("b")) != 3 {
		t.Errorf("L0 counts wrong: a=%d b=%d", l0.GetCount(cps.FromString("a")), l0.GetCount(cps.FromString("b")))
	}
	if got := res.Priors[0]; got < 1.999 || got > 2.001 {
		t.Errorf("prior0 = %v, want ~2.0", got)
	}
	if got := res.Posteriors[0]; got < 5.999 || got > 6.001 {
		t.Errorf("posterior0 = %v, want ~6.0", got)
	}
}

func TestPairJoinSeedsNextIteration(t *testing.T) {
	// Iteration 1 with K=1 should promote the most frequent pair-join
	// on top of the alphabet.
	corpus := toCorpus("abcabc")
	res, err := Run(corpus, Options{Iterations: 2, NewWordsPerIter: 1, PairJoinBootstrap: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	l1 := res.Lexicons[1]
	for _, c := range []string{"a", "b", "c"} {
		if l1.GetCount(cps.FromString(c)) == 0 {
			t.Errorf("L1 missing alphabet entry %q", c)
		}
	}
	// At least one multi-character entry should have been promoted.
	var multiChar int
	for _, item := range l1.ItemsSorted() {
		if len(item.Key) > 1 {
			multiChar++
		}
	}
	if multiChar == 0 {
		t.Errorf("L1 should contain at least one promoted join beyond the alphabet")
	}
}

func TestKeysAreSubstringsOfCorpus(t *testing.T) {
	// Every iteration's lexicon keys must be substrings of some corpus
	// entry.
	corpus := toCorpus("banana", "bandana", "cabana")
	res, err := Run(corpus, Options{Iterations: 3, NewWordsPerIter: 5})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, lex := range res.Lexicons {
		for _, item := range lex.ItemsSorted() {
			key := item.Key.String()
			if !anyCorpusContains(corpus, key) {
				t.Errorf("iteration %d: key %q is not a substring of any corpus entry", i, key)
			}
		}
	}
}

func anyCorpusContains(corpus []cps.String, sub string) bool {
	for _, c := range corpus {
		if strings.Contains(c.String(), sub) {
			return true
		}
	}
	return false
}

func TestDeterminism(t *testing.T) {
	// Two runs with identical inputs must produce identical results.
	corpus := toCorpus("hello", "world", "held", "old", "hold")
	opts := Options{Iterations: 3, NewWordsPerIter: 4}

	r1, err := Run(corpus, opts)
	if err != nil {
		t.Fatalf("Run 1: %v", err)
	}
	r2, err := Run(corpus, opts)
	if err != nil {
		t.Fatalf("Run 2: %v", err)
	}

	for i := range r1.Lexicons {
		if r1.Priors[i] != r2.Priors[i] {
			t.Errorf("iteration %d: prior diverged: %v vs %v", i, r1.Priors[i], r2.Priors[i])
		}
		if r1.Posteriors[i] != r2.Posteriors[i] {
			t.Errorf("iteration %d: posterior diverged: %v vs %v", i, r1.Posteriors[i], r2.Posteriors[i])
		}
		items1 := r1.Lexicons[i].ItemsSorted()
		items2 := r2.Lexicons[i].ItemsSorted()
		if len(items1) != len(items2) {
			t.Fatalf("iteration %d: lexicon size diverged: %d vs %d", i, len(items1), len(items2))
		}
		for j := range items1 {
			if items1[j].Count != items2[j].Count {
				t.Errorf("iteration %d entry %d: count diverged: %d vs %d", i, j, items1[j].Count, items2[j].Count)
			}
		}
	}
}

func TestCorpusEntryTooLongRejected(t *testing.T) {
	corpus := toCorpus(strings.Repeat("a", 300))
	_, err := Run(corpus, Options{Iterations: 1})
	if err != ErrCorpusEntryTooLong {
		t.Fatalf("err = %v, want ErrCorpusEntryTooLong", err)
	}
}

func TestMDLProgressOnRepresentativeCorpus(t *testing.T) {
	// Property 6: H is expected (not guaranteed) to decrease; check it
	// holds in practice for a corpus with real repeated substructure.
	corpus := toCorpus("unhappy", "unhappily", "happiness", "happily", "unkind", "unkindly", "kindness")
	res, err := Run(corpus, Options{Iterations: 5, NewWordsPerIter: 5})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	h0 := res.Priors[0] + res.Posteriors[0]
	hLast := res.Priors[len(res.Priors)-1] + res.Posteriors[len(res.Posteriors)-1]
	if hLast > h0 {
		t.Errorf("H did not decrease over the run: H0=%v, H_last=%v", h0, hLast)
	}
}
