package cli

import (
	"context"
	"encoding/json"
	"errors"

	flag "github.com/spf13/pflag"

	"aggutils/internal/config"
	"aggutils/internal/mutate"
)

var (
	errInputRequired = errors.New("input file is required")
	errNegativeCount = errors.New("exported count must be non-negative")
)

// NewGenBrokenJSONs builds the gen-broken-jsons command. It treats the input
// JSON as plain text lines and corrupts them with independent probability
// trials, producing fixtures the aggregator consumer must reject.
func NewGenBrokenJSONs(cfg config.Config) *Command {
	flags := flag.NewFlagSet("gen-broken-jsons", flag.ContinueOnError)

	input := flags.StringP("input", "i", "", "name of input file")
	output := flags.StringP("output", "o", cfg.OutputTemplate, "template for output file names ({} is the artifact index)")
	exported := flags.IntP("exported", "e", cfg.Exported, "number of artifacts to generate")
	shuffle := flags.BoolP("shuffle-lines", "s", false, "shuffle lines to produce improper JSON")
	add := flags.BoolP("add-lines", "a", false, "add random lines to produce improper JSON")
	deleteLines := flags.BoolP("delete-lines", "d", false, "delete randomly selected lines to produce improper JSON")
	mutateLines := flags.BoolP("mutate-lines", "m", false, "mutate lines individually")
	addProbability := flags.Int("add-line-probability", cfg.AddProbability, "probability of a synthetic line being added (0-100)")
	deleteProbability := flags.Int("delete-line-probability", cfg.DeleteProbability, "probability of a line being deleted (0-100)")
	mutateProbability := flags.Int("mutate-line-probability", cfg.MutateProbability, "probability of a line being mutated (0-100)")
	control := flags.Bool("control", false, "also write the pristine source as one extra artifact")
	verbose := flags.BoolP("verbose", "v", false, "trace every applied mutation")

	return &Command{
		Usage: "gen-broken-jsons -i <file> [flags]",
		Short: "generate broken JSON fixtures from a well-formed document",
		Long: `Reads a well-formed JSON document as text lines and writes N independently
corrupted copies. Each enabled operation (shuffle, add, delete, mutate) runs
its own random trial per line, so artifacts never share corruption.`,
		Flags: flags,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.SetVerbose(*verbose)

			if *input == "" {
				return errInputRequired
			}

			if *exported < 0 {
				return errNegativeCount
			}

			ops := mutate.LineOps{
				Shuffle:           *shuffle,
				Add:               *add,
				Delete:            *deleteLines,
				Mutate:            *mutateLines,
				AddProbability:    *addProbability,
				DeleteProbability: *deleteProbability,
				MutateProbability: *mutateProbability,
			}

			validateErr := ops.Validate()
			if validateErr != nil {
				return validateErr
			}

			templateErr := mutate.ValidateTemplate(*output)
			if templateErr != nil {
				return templateErr
			}

			// Fatal: an unreadable source aborts before any artifact
			// is written.
			lines, err := mutate.ReadLines(*input)
			if err != nil {
				return err
			}

			o.Verbosef("loading source document %s: %d lines", *input, len(lines))

			rng := mutate.NewRNG()
			written := 0

			for i := range *exported {
				path := mutate.OutputPath(*output, i)
				o.Verbosef("generating %s", path)

				artifact := mutate.CorruptLines(lines, ops, rng, o.Tracef)
				data := mutate.JoinLines(artifact)

				if json.Valid(data) {
					o.Tracef("note: artifact still parses as valid JSON")
				}

				writeErr := mutate.WriteArtifact(path, data)
				if writeErr != nil {
					return writeErr
				}

				written++
			}

			if *control {
				path := mutate.OutputPath(*output, *exported)
				o.Verbosef("generating control copy %s", path)

				writeErr := mutate.WriteArtifact(path, mutate.JoinLines(lines))
				if writeErr != nil {
					return writeErr
				}

				written++
			}

			o.Println("generated", written, "artifacts")

			return nil
		},
	}
}
