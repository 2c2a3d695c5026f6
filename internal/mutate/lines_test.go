package mutate

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1))
}

var fiveLineDoc = []string{
	"{",
	`    "OrgID": 1,`,
	`    "ClusterName": "c1",`,
	`    "Report": {}`,
	"}",
}

func TestCorruptLinesZeroProbabilityIsIdentity(t *testing.T) {
	t.Parallel()

	ops := LineOps{
		Add:    true,
		Delete: true,
		Mutate: true,
		// all probabilities zero
	}

	rng := testRNG()

	for range 20 {
		got := CorruptLines(fiveLineDoc, ops, rng, nil)
		if diff := cmp.Diff(fiveLineDoc, got); diff != "" {
			t.Fatalf("artifact differs from source (-want +got):\n%s", diff)
		}
	}
}

func TestCorruptLinesFullProbabilityHitsEveryLine(t *testing.T) {
	t.Parallel()

	t.Run("delete removes every line", func(t *testing.T) {
		t.Parallel()

		ops := LineOps{Delete: true, DeleteProbability: MaxProbability}

		got := CorruptLines(fiveLineDoc, ops, testRNG(), nil)
		if len(got) != 0 {
			t.Fatalf("expected empty artifact, got %d lines: %q", len(got), got)
		}
	})

	t.Run("add inserts after every line", func(t *testing.T) {
		t.Parallel()

		ops := LineOps{Add: true, AddProbability: MaxProbability}

		got := CorruptLines(fiveLineDoc, ops, testRNG(), nil)
		if len(got) != 2*len(fiveLineDoc) {
			t.Fatalf("expected %d lines, got %d", 2*len(fiveLineDoc), len(got))
		}

		// Original lines survive at even positions.
		for i, line := range fiveLineDoc {
			if got[2*i] != line {
				t.Fatalf("line %d: expected %q at position %d, got %q", i, line, 2*i, got[2*i])
			}
		}
	})

	t.Run("mutate rewrites every line", func(t *testing.T) {
		t.Parallel()

		ops := LineOps{Mutate: true, MutateProbability: MaxProbability}

		got := CorruptLines(fiveLineDoc, ops, testRNG(), nil)
		if len(got) != len(fiveLineDoc) {
			t.Fatalf("mutate changed line count: %d -> %d", len(fiveLineDoc), len(got))
		}

		for i, line := range got {
			if len(line) != len(fiveLineDoc[i]) {
				t.Errorf("line %d: length changed from %d to %d", i, len(fiveLineDoc[i]), len(line))
			}

			if line == fiveLineDoc[i] && len(fiveLineDoc[i]) > 3 {
				t.Errorf("line %d survived mutation unchanged: %q", i, line)
			}
		}
	})
}

func TestCorruptLinesShufflePreservesMultiset(t *testing.T) {
	t.Parallel()

	ops := LineOps{Shuffle: true}
	rng := testRNG()

	for range 20 {
		got := CorruptLines(fiveLineDoc, ops, rng, nil)

		wantSorted := slices.Clone(fiveLineDoc)
		slices.Sort(wantSorted)

		gotSorted := slices.Clone(got)
		slices.Sort(gotSorted)

		if diff := cmp.Diff(wantSorted, gotSorted); diff != "" {
			t.Fatalf("shuffle changed line multiset (-want +got):\n%s", diff)
		}
	}
}

func TestCorruptLinesDeleteNeverGrows(t *testing.T) {
	t.Parallel()

	ops := LineOps{Delete: true, DeleteProbability: 50}
	rng := testRNG()

	for range 50 {
		got := CorruptLines(fiveLineDoc, ops, rng, nil)
		if len(got) > len(fiveLineDoc) {
			t.Fatalf("delete grew the document: %d -> %d", len(fiveLineDoc), len(got))
		}
	}
}

func TestCorruptLinesAddNeverShrinks(t *testing.T) {
	t.Parallel()

	ops := LineOps{Add: true, AddProbability: 50}
	rng := testRNG()

	for range 50 {
		got := CorruptLines(fiveLineDoc, ops, rng, nil)
		if len(got) < len(fiveLineDoc) {
			t.Fatalf("add shrank the document: %d -> %d", len(fiveLineDoc), len(got))
		}
	}
}

func TestCorruptLinesDoesNotModifySource(t *testing.T) {
	t.Parallel()

	source := slices.Clone(fiveLineDoc)
	ops := LineOps{
		Shuffle:           true,
		Add:               true,
		Delete:            true,
		Mutate:            true,
		AddProbability:    MaxProbability,
		DeleteProbability: 50,
		MutateProbability: MaxProbability,
	}

	_ = CorruptLines(source, ops, testRNG(), nil)

	if diff := cmp.Diff(fiveLineDoc, source); diff != "" {
		t.Fatalf("source document was modified (-want +got):\n%s", diff)
	}
}

func TestCorruptLinesEmptySource(t *testing.T) {
	t.Parallel()

	ops := LineOps{
		Shuffle:           true,
		Add:               true,
		Delete:            true,
		Mutate:            true,
		AddProbability:    MaxProbability,
		DeleteProbability: MaxProbability,
		MutateProbability: MaxProbability,
	}

	got := CorruptLines(nil, ops, testRNG(), nil)
	if len(got) != 0 {
		t.Fatalf("expected empty artifact from empty source, got %q", got)
	}
}

func TestCorruptLinesTraceDoesNotAffectOutput(t *testing.T) {
	t.Parallel()

	ops := LineOps{
		Add:               true,
		Delete:            true,
		Mutate:            true,
		AddProbability:    60,
		DeleteProbability: 30,
		MutateProbability: 60,
	}

	silent := CorruptLines(fiveLineDoc, ops, rand.New(rand.NewPCG(7, 7)), nil)

	traced := 0
	loud := CorruptLines(fiveLineDoc, ops, rand.New(rand.NewPCG(7, 7)), func(string, ...any) {
		traced++
	})

	if diff := cmp.Diff(silent, loud); diff != "" {
		t.Fatalf("tracing changed artifact content (-silent +traced):\n%s", diff)
	}

	if traced == 0 {
		t.Fatal("expected at least one trace emission")
	}
}

func TestLineOpsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ops     LineOps
		wantErr bool
	}{
		{
			name: "defaults are valid",
			ops: LineOps{
				AddProbability:    DefaultAddProbability,
				DeleteProbability: DefaultDeleteProbability,
				MutateProbability: DefaultMutateProbability,
			},
		},
		{
			name: "bounds are valid",
			ops: LineOps{
				AddProbability:    MinProbability,
				DeleteProbability: MaxProbability,
			},
		},
		{
			name:    "negative probability",
			ops:     LineOps{AddProbability: -1},
			wantErr: true,
		},
		{
			name:    "probability above 100",
			ops:     LineOps{DeleteProbability: 101},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.ops.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}

			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestMutatedLineKeepsIndentation(t *testing.T) {
	t.Parallel()

	line := `        "key": "value",`

	got := mutatedLine(line, testRNG())
	if len(got) != len(line) {
		t.Fatalf("length changed: %d -> %d", len(line), len(got))
	}

	if got[:8] != "        " {
		t.Fatalf("indentation not preserved: %q", got)
	}
}
