package mutate

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	lowerAlpha = "abcdefghijklmnopqrstuvwxyz"

	// lineCharset is used when rewriting whole lines. It mixes letters,
	// digits, and JSON structure characters so mutated lines keep a
	// JSON-ish shape while rarely staying parseable.
	lineCharset = lowerAlpha + `ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"{}[]:,`

	synthKeyLen   = 8
	synthValueLen = 12
)

// NewRNG returns the randomness source for one run, seeded from process
// entropy. Runs are intentionally not reproducible; tests construct seeded
// generators directly.
func NewRNG() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func randomToken(rng *rand.Rand, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = lowerAlpha[rng.IntN(len(lowerAlpha))]
	}

	return string(b)
}

func randomKey(rng *rand.Rand) string {
	return randomToken(rng, synthKeyLen)
}

// randomValue returns a random scalar for a synthesized field.
func randomValue(rng *rand.Rand) any {
	if rng.IntN(2) == 0 {
		return randomToken(rng, synthValueLen)
	}

	return rng.IntN(1_000_000)
}

// syntheticLine builds a random key/value line, indented like its neighbor.
func syntheticLine(neighbor string, rng *rand.Rand) string {
	return fmt.Sprintf("%s%q: %q,",
		leadingWhitespace(neighbor), randomKey(rng), randomToken(rng, synthValueLen))
}

// mutatedLine replaces the content of line with random text of the same
// shape: indentation and length are preserved.
func mutatedLine(line string, rng *rand.Rand) string {
	indent := leadingWhitespace(line)
	body := line[len(indent):]

	replacement := make([]byte, len(body))
	for i := range replacement {
		replacement[i] = lineCharset[rng.IntN(len(lineCharset))]
	}

	return indent + string(replacement)
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
