package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"aggutils/internal/config"
	"aggutils/internal/logscrub"
)

// NewAnonymizeLog builds the anonymize-log command: replace cluster IDs and
// IP addresses in log text with salted hashes.
func NewAnonymizeLog(cfg config.Config) *Command {
	flags := flag.NewFlagSet("anonymize-log", flag.ContinueOnError)

	input := flags.StringP("input", "i", "-", "log file to anonymize, - for stdin")
	output := flags.StringP("output", "o", "-", "file to write, - for stdout")
	salt := flags.StringP("salt", "s", cfg.Salt, "salt for hashing, random when empty")
	verbose := flags.BoolP("verbose", "v", false, "make it verbose")

	return &Command{
		Usage: "anonymize-log [flags]",
		Short: "anonymize cluster IDs and IP addresses in a log",
		Long: `Replaces every UUID and IPv4 address in the log with a salted hash so the
log can be shared outside the team. The same identifier always maps to the
same hash within one salt, so the log stays correlatable.`,
		Flags: flags,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.SetVerbose(*verbose)

			if *salt == "" {
				fresh, err := logscrub.NewSalt()
				if err != nil {
					return err
				}

				*salt = fresh

				o.Verbosef("using random salt %s", fresh)
			}

			var in io.Reader = os.Stdin

			if *input != "-" {
				f, err := os.Open(*input)
				if err != nil {
					return fmt.Errorf("opening %s: %w", *input, err)
				}
				defer f.Close()

				in = f
			}

			out := o.Out()

			if *output != "-" {
				f, err := os.Create(*output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", *output, err)
				}
				defer f.Close()

				out = f
			}

			lines, err := logscrub.New(*salt).Copy(out, in)
			if err != nil {
				return err
			}

			// The summary goes to stderr so it never mixes with log
			// output on stdout.
			o.ErrPrintln("anonymized", lines, "lines")

			return nil
		},
	}
}
