// Package report serializes per-iteration induction results to
// msgpack. It is purely an external collaborator: the induction core
// itself has no persisted state, and report emission never feeds back
// into a run.
package report

import (
	"bytes"
	"os"

	"github.com/bastiangx/lexhnd/pkg/induction"
	"github.com/vmihailenco/msgpack/v5"
)

// LexiconEntry is one (key, count) pair from a lexicon snapshot.
type LexiconEntry struct {
	Key   string `msgpack:"k"`
	Count uint64 `msgpack:"n"`
}

// IterationReport is one iteration's snapshot: the lexicon contents,
// prior, posterior, total description length, and delta from the
// previous iteration's H.
type IterationReport struct {
	Iteration int            `msgpack:"i"`
	Lexicon   []LexiconEntry `msgpack:"lex"`
	Prior     float64        `msgpack:"prior"`
	Posterior float64        `msgpack:"post"`
	H         float64        `msgpack:"h"`
	DeltaH    float64        `msgpack:"dh,omitempty"`
}

// Build converts an induction.Result into one IterationReport per
// iteration, in order.
func Build(res *induction.Result) []IterationReport {
	reports := make([]IterationReport, len(res.Lexicons))
	var prevH float64
	for i := range res.Lexicons {
		items := res.Lexicons[i].ItemsSorted()
		entries := make([]LexiconEntry, len(items))
		for j, it := range items {
			entries[j] = LexiconEntry{Key: it.Key.String(), Count: it.Count}
		}
		h := res.Priors[i] + res.Posteriors[i]
		var deltaH float64
		if i > 0 {
			deltaH = h - prevH
		}
		reports[i] = IterationReport{
			Iteration: i,
			Lexicon:   entries,
			Prior:     res.Priors[i],
			Posterior: res.Posteriors[i],
			H:         h,
			DeltaH:    deltaH,
		}
		prevH = h
	}
	return reports
}

// WriteFile streams one encoded msgpack record per iteration into
// path, truncating any existing file.
func WriteFile(path string, reports []IterationReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, r := range reports {
		var buf bytes.Buffer
		encoder := msgpack.NewEncoder(&buf)
		if err := encoder.Encode(r); err != nil {
			return err
		}
		if _, err := f.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
