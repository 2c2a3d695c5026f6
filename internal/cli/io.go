package cli

import (
	"fmt"
	"io"
)

// IO carries command output. Warnings are printed immediately to stderr and
// force a non-zero exit at the end of the run, so partial results can still
// be produced with problems flagged.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	verbose  bool
	warnings int
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// SetVerbose enables Tracef and Verbosef output.
func (o *IO) SetVerbose(on bool) {
	o.verbose = on
}

// Out exposes the stdout writer for bulk output (CSV, SQL, scrubbed logs).
func (o *IO) Out() io.Writer {
	return o.out
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Tracef writes one indented diagnostic line per applied operation.
// Silent unless verbose mode is on; tracing never affects artifact content.
func (o *IO) Tracef(format string, a ...any) {
	if o.verbose {
		_, _ = fmt.Fprintf(o.out, "    "+format+"\n", a...)
	}
}

// Verbosef writes a progress line, silent unless verbose mode is on.
func (o *IO) Verbosef(format string, a ...any) {
	if o.verbose {
		_, _ = fmt.Fprintf(o.out, format+"\n", a...)
	}
}

// Warn records a non-fatal problem.
func (o *IO) Warn(a ...any) {
	o.warnings++

	_, _ = fmt.Fprintln(o.errOut, append([]any{"warning:"}, a...)...)
}

// Finish returns the final exit code: 1 if any warnings were recorded.
func (o *IO) Finish() int {
	if o.warnings > 0 {
		return 1
	}

	return 0
}
