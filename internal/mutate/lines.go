// Package mutate implements the randomized corruption engine behind the
// fixture generators. All operations are pure functions over a fresh copy of
// the source document, parameterized by an injected random source, so
// corruption never compounds across artifacts and tests can seed the
// generator.
package mutate

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// TraceFunc receives a human-readable note for every applied operation.
// A nil TraceFunc disables tracing. Tracing never affects artifact content.
type TraceFunc func(format string, args ...any)

func (t TraceFunc) emit(format string, args ...any) {
	if t != nil {
		t(format, args...)
	}
}

// Probability bounds for all gated operations.
const (
	MinProbability = 0
	MaxProbability = 100
)

// Default probabilities for the line operations.
const (
	DefaultAddProbability    = 10
	DefaultDeleteProbability = 10
	DefaultMutateProbability = 20
)

var ErrProbabilityRange = errors.New("probability must be between 0 and 100")

// LineOps controls the line-based corruption pass. Each enabled operation
// runs an independent per-line trial against its probability: 0 never fires,
// 100 always fires.
type LineOps struct {
	Shuffle bool
	Add     bool
	Delete  bool
	Mutate  bool

	AddProbability    int
	DeleteProbability int
	MutateProbability int
}

// Validate checks that every probability is within [0,100]. Probabilities of
// disabled operations are checked too so a bad config surfaces immediately.
func (ops LineOps) Validate() error {
	for _, p := range []struct {
		name  string
		value int
	}{
		{"add-line-probability", ops.AddProbability},
		{"delete-line-probability", ops.DeleteProbability},
		{"mutate-line-probability", ops.MutateProbability},
	} {
		if p.value < MinProbability || p.value > MaxProbability {
			return fmt.Errorf("%w: --%s=%d", ErrProbabilityRange, p.name, p.value)
		}
	}

	return nil
}

// CorruptLines derives one corrupted artifact from lines. The input slice is
// never modified. Operations apply in a fixed order: shuffle, add, delete,
// mutate. Every operation is defined over an empty input, where it degrades
// to a no-op.
func CorruptLines(lines []string, ops LineOps, rng *rand.Rand, trace TraceFunc) []string {
	out := slices.Clone(lines)

	if ops.Shuffle {
		trace.emit("shuffling lines")
		rng.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}

	if ops.Add {
		out = addLines(out, ops.AddProbability, rng, trace)
	}

	if ops.Delete {
		out = deleteLines(out, ops.DeleteProbability, rng, trace)
	}

	if ops.Mutate {
		out = mutateLines(out, ops.MutateProbability, rng, trace)
	}

	return out
}

// hit runs one probability trial.
func hit(rng *rand.Rand, probability int) bool {
	return rng.IntN(MaxProbability) < probability
}

// addLines inserts a synthetic key/value line after each position that wins
// its trial. The output never has fewer lines than the input.
func addLines(lines []string, probability int, rng *rand.Rand, trace TraceFunc) []string {
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		out = append(out, line)

		if hit(rng, probability) {
			trace.emit("appending synthetic line after position %d", i+1)
			out = append(out, syntheticLine(line, rng))
		}
	}

	return out
}

// deleteLines omits each line that wins its trial. The output never has more
// lines than the input.
func deleteLines(lines []string, probability int, rng *rand.Rand, trace TraceFunc) []string {
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		if hit(rng, probability) {
			trace.emit("deleting line at position %d", i+1)

			continue
		}

		out = append(out, line)
	}

	return out
}

// mutateLines replaces each line that wins its trial with random text of the
// same shape. The line count is preserved.
func mutateLines(lines []string, probability int, rng *rand.Rand, trace TraceFunc) []string {
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		if hit(rng, probability) {
			trace.emit("mutating line at position %d", i+1)

			line = mutatedLine(line, rng)
		}

		out = append(out, line)
	}

	return out
}
