package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"aggutils/internal/config"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

// runCommand builds the command with default configuration and runs it with
// the given arguments, capturing both output streams.
func runCommand(t *testing.T, build func(config.Config) *Command, args ...string) runResult {
	t.Helper()

	var out, errOut bytes.Buffer

	o := NewIO(&out, &errOut)
	code := build(config.Default()).Run(context.Background(), o, args)

	return runResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("output does not contain %q:\n%s", needle, haystack)
	}
}
