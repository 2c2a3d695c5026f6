package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"

	"aggutils/internal/config"
	"aggutils/internal/dbscript"
)

var (
	errDaysAndCSVRequired = errors.New("max age in days and a CSV export are required")
	errBadDays            = errors.New("max age must be a positive integer")
)

// NewCleanupOldResults builds the cleanup-old-results command: generate a
// SQL script deleting reports older than the given number of days.
func NewCleanupOldResults(config.Config) *Command {
	flags := flag.NewFlagSet("cleanup-old-results", flag.ContinueOnError)

	verbose := flags.BoolP("verbose", "v", false, "make it verbose")

	return &Command{
		Usage: "cleanup-old-results <max-age-days> <reports.csv> [flags]",
		Short: "generate SQL deleting outdated reports",
		Long: `Reads a CSV export of the reports table and prints a SQL script that
deletes every report older than the given number of days. The script is
printed to stdout for review; it is never executed.`,
		Flags: flags,
		Exec: func(_ context.Context, o *IO, args []string) error {
			o.SetVerbose(*verbose)

			if len(args) < 2 {
				return errDaysAndCSVRequired
			}

			days, err := strconv.Atoi(args[0])
			if err != nil || days <= 0 {
				return fmt.Errorf("%w: %s", errBadDays, args[0])
			}

			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[1], err)
			}
			defer f.Close()

			rows, err := dbscript.ParseRows(f)
			if err != nil {
				return err
			}

			written, err := dbscript.WriteScript(o.Out(), rows, days, time.Now())
			if err != nil {
				return err
			}

			o.Verbosef("%d of %d reports selected for deletion", written, len(rows))

			return nil
		},
	}
}
