package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/lexhnd/internal/cps"
	"github.com/bastiangx/lexhnd/pkg/induction"
	"github.com/vmihailenco/msgpack/v5"
)

func sampleResult(t *testing.T) *induction.Result {
	t.Helper()
	corpus := []cps.String{cps.FromString("ab"), cps.FromString("ab")}
	res, err := induction.Run(corpus, induction.Options{Iterations: 2, NewWordsPerIter: 2})
	if err != nil {
		t.Fatalf("induction.Run: %v", err)
	}
	return res
}

func TestBuildComputesDeltaH(t *testing.T) {
	res := sampleResult(t)
	reports := Build(res)
	if len(reports) != len(res.Lexicons) {
		t.Fatalf("len(reports) = %d, want %d", len(reports), len(res.Lexicons))
	}
	if reports[0].DeltaH != 0 {
		t.Errorf("first iteration DeltaH = %v, want 0", reports[0].DeltaH)
	}
	wantDelta := reports[1].H - reports[0].H
	if reports[1].DeltaH != wantDelta {
		t.Errorf("DeltaH = %v, want %v", reports[1].DeltaH, wantDelta)
	}
}

func TestWriteFileRoundTrips(t *testing.T) {
	res := sampleResult(t)
	reports := Build(res)

	path := filepath.Join(t.TempDir(), "out.msgpack")
	if err := WriteFile(path, reports); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	decoder := msgpack.NewDecoder(bytes.NewReader(data))
	for i := range reports {
		var got IterationReport
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode record %d: %v", i, err)
		}
		if got.Iteration != reports[i].Iteration {
			t.Errorf("record %d Iteration = %d, want %d", i, got.Iteration, reports[i].Iteration)
		}
	}
}
