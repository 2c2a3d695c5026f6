package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/lipgloss"
	flag "github.com/spf13/pflag"

	"aggutils/internal/config"
	"aggutils/internal/openapi"
)

var errOpenAPIProblems = errors.New("OpenAPI document has problems")

// Badge styles match the original tput colors: green OK, red FAIL,
// magenta WARN.
var (
	okBadge   = lipgloss.NewStyle().Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0")).Render("[OK]")
	failBadge = lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")).Render("[FAIL]")
	warnBadge = lipgloss.NewStyle().Background(lipgloss.Color("5")).Foreground(lipgloss.Color("15")).Render("[WARN]")
)

// NewOpenAPICheck builds the openapi-check command.
func NewOpenAPICheck(config.Config) *Command {
	flags := flag.NewFlagSet("openapi-check", flag.ContinueOnError)

	directory := flags.StringP("directory", "d", ".", "directory with the OpenAPI document to check")
	noColors := flags.BoolP("no-colors", "n", false, "disable color output")
	verbose := flags.BoolP("verbose", "v", false, "make it verbose")

	return &Command{
		Usage: "openapi-check [flags]",
		Short: "check descriptions in an OpenAPI document",
		Long: `Loads openapi.json (or openapi.yaml) from the directory and verifies that
the document, every endpoint method, every parameter, and every response
carry a non-empty description. Exits non-zero when problems are found.`,
		Flags: flags,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.SetVerbose(*verbose)

			badge := func(styled, plain string) string {
				if *noColors {
					return plain
				}

				return styled
			}

			passes, failures := 0, 0

			path, doc, err := openapi.Load(*directory)

			switch {
			case errors.Is(err, openapi.ErrNoDocument):
				o.Println(badge(warnBadge, "[WARN]") + ": no OpenAPI document detected")

			case err != nil:
				o.Println(path, "cannot be parsed")
				o.Println(err.Error())

				failures++

			default:
				o.Verbosef("%s has valid format", path)

				problems := openapi.Check(doc)
				for _, problem := range problems {
					o.Println("    " + problem)
				}

				failures += len(problems)
				if len(problems) == 0 {
					passes++
				}
			}

			switch {
			case failures > 0:
				o.Println(badge(failBadge, "[FAIL]") + ": document with invalid format and/or content detected")
			case passes > 0:
				o.Println(badge(okBadge, "[OK]") + ": OpenAPI document has proper format and content")
			}

			// Bare counters at the end so CI can scrape them.
			o.Println(passes, "passes")
			o.Println(failures, "failures")

			if failures > 0 {
				return errOpenAPIProblems
			}

			return nil
		},
	}
}
