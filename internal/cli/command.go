// Package cli provides the shared command plumbing for the toolkit binaries:
// flag handling, help generation, configuration loading, and process
// bootstrap. Each binary under cmd/ builds exactly one Command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines one toolkit binary with unified help generation.
type Command struct {
	// Usage is the freeform usage string. The first word is the binary
	// name. Examples: "gen-broken-jsons -i <file> [flags]".
	Usage string

	// Short is a one-line description.
	Short string

	// Long is the full description shown in help. If empty, Short is used.
	Long string

	// Flags defines the command's flags.
	Flags *flag.FlagSet

	// Exec runs the command after flags are parsed. args holds the
	// remaining positional arguments.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the binary name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// PrintHelp prints the full help output for "--help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage:", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses flags and executes the command. Returns exit code. Error
// printing happens here so output ordering is consistent across tools.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return 0
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
