package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"aggutils/internal/config"
	"aggutils/internal/mutate"
)

// NewGenBrokenMessages builds the gen-broken-messages command, the
// field-level counterpart of gen-broken-jsons: every artifact gets exactly
// one corruption (remove, add, or replace a key), chosen uniformly.
func NewGenBrokenMessages(cfg config.Config) *Command {
	flags := flag.NewFlagSet("gen-broken-messages", flag.ContinueOnError)

	input := flags.StringP("input", "i", "", "name of input file")
	output := flags.StringP("output", "o", cfg.OutputTemplate, "template for output file names ({} is the artifact index)")
	exported := flags.IntP("exported", "e", cfg.Exported, "number of artifacts to generate")
	control := flags.Bool("control", false, "also write the pristine source as one extra artifact")
	verbose := flags.BoolP("verbose", "v", false, "trace every applied mutation")

	return &Command{
		Usage: "gen-broken-messages -i <file> [flags]",
		Short: "corrupt one field per artifact in a JSON message",
		Long: `Reads a well-formed JSON message and writes N copies, each with exactly one
field-level corruption: a randomly chosen key removed, a synthetic key added,
or a randomly chosen key's value replaced.`,
		Flags: flags,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.SetVerbose(*verbose)

			if *input == "" {
				return errInputRequired
			}

			if *exported < 0 {
				return errNegativeCount
			}

			templateErr := mutate.ValidateTemplate(*output)
			if templateErr != nil {
				return templateErr
			}

			payload, err := mutate.ReadMessage(*input)
			if err != nil {
				return err
			}

			o.Verbosef("loading source message %s: %d keys", *input, len(payload))

			rng := mutate.NewRNG()
			written := 0

			for i := range *exported {
				path := mutate.OutputPath(*output, i)
				o.Verbosef("generating %s", path)

				corrupted, mutation := mutate.CorruptMessage(payload, rng)
				if mutation.Key == "" {
					o.Tracef("%s: no eligible key", mutation.Op)
				} else {
					o.Tracef("%s: %q", mutation.Op, mutation.Key)
				}

				data, marshalErr := mutate.MarshalMessage(corrupted)
				if marshalErr != nil {
					return marshalErr
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

				data, marshalErr := mutate.MarshalMessage(payload)
				if marshalErr != nil {
					return marshalErr
				}

				writeErr := mutate.WriteArtifact(path, data)
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
