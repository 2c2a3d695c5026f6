package mutate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

// placeholder marks where the artifact index goes in an output template.
const placeholder = "{}"

var ErrNoPlaceholder = errors.New("output template has no {} placeholder")

// ValidateTemplate rejects templates that cannot produce unique paths.
func ValidateTemplate(template string) error {
	if !strings.Contains(template, placeholder) {
		return fmt.Errorf("%w: %s", ErrNoPlaceholder, template)
	}

	return nil
}

// OutputPath substitutes the zero-based artifact index into template.
func OutputPath(template string, index int) string {
	return strings.Replace(template, placeholder, strconv.Itoa(index), 1)
}

// JoinLines renders a line artifact for persistence. An empty artifact
// becomes an empty file.
func JoinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}

	return []byte(strings.Join(lines, "\n") + "\n")
}

// MarshalMessage renders a message artifact with four-space indentation, the
// format the aggregator test rig consumes.
func MarshalMessage(payload map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding message: %w", err)
	}

	return append(data, '\n'), nil
}

// WriteArtifact persists one artifact atomically so a partially written file
// never ends up under the output path.
func WriteArtifact(path string, data []byte) error {
	err := atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("writing artifact %s: %w", path, err)
	}

	return nil
}
