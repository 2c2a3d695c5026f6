package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"aggutils/internal/config"
	"aggutils/internal/mutate"
	"aggutils/internal/report"
)

var (
	errOrgAndClusterRequired = errors.New("org ID and cluster name arguments are required")
	errBadOrgID              = errors.New("org ID must be an integer")
)

// NewToReport builds the to-report command: convert anonymized rule-engine
// results (s_*.json) into aggregator report messages (r_*.json).
func NewToReport(config.Config) *Command {
	flags := flag.NewFlagSet("to-report", flag.ContinueOnError)

	directory := flags.StringP("directory", "d", ".", "directory with anonymized result files")
	verbose := flags.BoolP("verbose", "v", false, "make it verbose")

	return &Command{
		Usage: "to-report <org-id> <cluster-name> [flags]",
		Short: "wrap anonymized results into aggregator report messages",
		Long: `Converts every s_*.json file in the directory into a report the aggregator
can ingest: internal rule results are dropped, and the payload is wrapped in
an envelope carrying the given organization ID, cluster name, and the current
timestamp. Output files are named r_*.json.`,
		Flags: flags,
		Exec: func(_ context.Context, o *IO, args []string) error {
			o.SetVerbose(*verbose)

			if len(args) < 2 {
				return errOrgAndClusterRequired
			}

			orgID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: %s", errBadOrgID, args[0])
			}

			clusterName := args[1]
			now := time.Now()

			entries, err := os.ReadDir(*directory)
			if err != nil {
				return fmt.Errorf("reading directory %s: %w", *directory, err)
			}

			written := 0

			for _, entry := range entries {
				name := entry.Name()
				if entry.IsDir() || !strings.HasPrefix(name, "s_") || !strings.HasSuffix(name, ".json") {
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

				filtered := report.FilterInternalRules(payload, o.Tracef)
				envelope := report.Build(filtered, orgID, clusterName, now)

				out, marshalErr := json.MarshalIndent(envelope, "", "    ")
				if marshalErr != nil {
					return fmt.Errorf("encoding report: %w", marshalErr)
				}

				outPath := filepath.Join(*directory, "r_"+name[len("s_"):])

				writeErr := mutate.WriteArtifact(outPath, append(out, '\n'))
				if writeErr != nil {
					return writeErr
				}

				o.Verbosef("%s -> %s", path, outPath)

				written++
			}

			o.Println("converted", written, "reports")

			return nil
		},
	}
}
