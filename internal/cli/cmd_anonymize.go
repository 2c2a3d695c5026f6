package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"aggutils/internal/config"
	"aggutils/internal/mutate"
	"aggutils/internal/report"
)

// anonymizedName formats the nth anonymized output file. The original file
// name is dropped because it may itself carry sensitive data.
func anonymizedName(n int) string {
	return fmt.Sprintf("s_%05d.json", n)
}

// NewAnonymize builds the anonymize command: scrub the info node from every
// rule-engine result in a directory and renumber the files.
func NewAnonymize(config.Config) *Command {
	flags := flag.NewFlagSet("anonymize", flag.ContinueOnError)

	directory := flags.StringP("directory", "d", ".", "directory with rule-engine result files")
	outDir := flags.StringP("output", "o", "", "directory for anonymized files (defaults to --directory)")
	verbose := flags.BoolP("verbose", "v", false, "make it verbose")

	return &Command{
		Usage: "anonymize [flags]",
		Short: "scrub sensitive info nodes from rule-engine results",
		Long: `Reads every *.json file in the directory, replaces the value under the
"info" key with an empty list, and writes the result as s_NNNNN.json. The
original file names are not preserved because they may contain sensitive
data. Files that fail to parse are skipped with a warning.`,
		Flags: flags,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.SetVerbose(*verbose)

			target := *outDir
			if target == "" {
				target = *directory
			}

			entries, err := os.ReadDir(*directory)
			if err != nil {
				return fmt.Errorf("reading directory %s: %w", *directory, err)
			}

			written := 0

			for _, entry := range entries {
				name := entry.Name()
				if entry.IsDir() || !strings.HasSuffix(name, ".json") {
					continue
				}

				// Skip already-anonymized outputs on re-runs.
				if strings.HasPrefix(name, "s_") {
					continue
				}

				path := filepath.Join(*directory, name)

				data, readErr := os.ReadFile(path)
				if readErr != nil {
					o.Warn("skipping", path+":", readErr)

					continue
				}

				var payload map[string]any

				parseErr := json.Unmarshal(data, &payload)
				if parseErr != nil {
					o.Warn("skipping", path+":", parseErr)

					continue
				}

				scrubbed := report.ScrubInfo(payload)

				out, marshalErr := mutate.MarshalMessage(scrubbed)
				if marshalErr != nil {
					return marshalErr
				}

				outPath := filepath.Join(target, anonymizedName(written))

				writeErr := mutate.WriteArtifact(outPath, out)
				if writeErr != nil {
					return writeErr
				}

				o.Verbosef("%s -> %s", path, outPath)

				written++
			}

			o.Println("anonymized", written, "files")

			return nil
		},
	}
}
