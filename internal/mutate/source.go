package mutate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Scanner limits for source documents. Fixtures are small, but a single
// minified JSON line can be long.
const (
	scanInitialBuf = 64 * 1024
	scanMaxBuf     = 4 * 1024 * 1024
)

// ReadLines loads the source document as an ordered line sequence. The
// returned slice is the immutable SourceDocument for one run; callers must
// not modify it between artifacts.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, scanInitialBuf), scanMaxBuf)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input %s: %w", path, err)
	}

	return lines, nil
}

// ReadMessage loads the source document as a JSON object. A document that is
// not a JSON object is a fatal input error.
func ReadMessage(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", path, err)
	}

	var payload map[string]any

	err = json.Unmarshal(data, &payload)
	if err != nil {
		return nil, fmt.Errorf("parsing input %s: %w", path, err)
	}

	return payload, nil
}
