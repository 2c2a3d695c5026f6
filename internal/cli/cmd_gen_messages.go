package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"aggutils/internal/config"
	"aggutils/internal/mutate"
)

// NewGenMessages builds the gen-messages command. Unlike the broken
// generators it keeps messages well-formed: each artifact is a fresh copy of
// the source with new random identifiers for the enabled attributes.
func NewGenMessages(cfg config.Config) *Command {
	flags := flag.NewFlagSet("gen-messages", flag.ContinueOnError)

	input := flags.StringP("input", "i", "input.json", "name of input file")
	output := flags.StringP("output", "o", "output{}.json", "pattern of output file names")
	repeat := flags.IntP("repeat", "r", cfg.Exported, "number of generated files")
	orgID := flags.BoolP("org-id", "g", false, "enable organization ID modification")
	accountNumber := flags.BoolP("account-number", "a", false, "enable account number modification")
	clusterID := flags.BoolP("cluster-id", "c", false, "enable cluster ID modification")
	verbose := flags.BoolP("verbose", "v", false, "make it verbose")

	return &Command{
		Usage: "gen-messages [flags]",
		Short: "derive well-formed messages with fresh identifiers",
		Long: `Reads one input message and writes N derived copies. Organization ID,
account number, and cluster ID are regenerated per copy when enabled, so a
single fixture can stand in for a fleet of clusters.`,
		Flags: flags,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.SetVerbose(*verbose)

			if *repeat < 0 {
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

			mods := mutate.Modifications{
				OrgID:         *orgID,
				AccountNumber: *accountNumber,
				ClusterID:     *clusterID,
			}

			rng := mutate.NewRNG()

			for i := range *repeat {
				message := mutate.ModifyMessage(payload, mods, rng)

				data, marshalErr := mutate.MarshalMessage(message)
				if marshalErr != nil {
					return marshalErr
				}

				path := mutate.OutputPath(*output, i)

				writeErr := mutate.WriteArtifact(path, data)
				if writeErr != nil {
					return writeErr
				}

				o.Verbosef("generated file %s", path)
			}

			o.Println("generated", *repeat, "messages")

			return nil
		},
	}
}
