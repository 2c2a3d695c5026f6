package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"

	"aggutils/internal/config"
	"aggutils/internal/metrics"
)

var errOutputRequired = errors.New("output file is required")

// NewMetricsExport builds the metrics-export command: poll a Prometheus
// endpoint and append selected Go runtime metrics to a CSV file.
func NewMetricsExport(cfg config.Config) *Command {
	flags := flag.NewFlagSet("metrics-export", flag.ContinueOnError)

	url := flags.StringP("url", "u", cfg.MetricsURL, "metrics endpoint to poll")
	output := flags.StringP("output", "o", "", "CSV file to write")
	delay := flags.DurationP("delay", "d", 5*time.Second, "pause between polls")
	maxRecords := flags.IntP("max-records", "m", 0, "stop after this many records, 0 for unlimited")
	verbose := flags.BoolP("verbose", "v", false, "make it verbose")

	return &Command{
		Usage: "metrics-export [flags]",
		Short: "record Go runtime metrics from a service into CSV",
		Long: `Polls the metrics endpoint of a running service and appends the Go memory
and GC counters to a CSV file, one row per poll. Runs until interrupted or
until the record limit is reached. The CSV can be fed straight into a
plotting tool to watch the memory behavior of the service over time.`,
		Flags: flags,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			o.SetVerbose(*verbose)

			if *output == "" {
				return errOutputRequired
			}

			f, err := os.Create(*output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", *output, err)
			}
			defer f.Close()

			writer := csv.NewWriter(f)

			header := append([]string{"timestamp"}, metrics.DefaultSeries...)
			if err := writer.Write(header); err != nil {
				return fmt.Errorf("writing CSV header: %w", err)
			}

			writer.Flush()

			client := &http.Client{Timeout: 10 * time.Second}
			recorded := 0

			for {
				values, fetchErr := metrics.Fetch(ctx, client, *url, metrics.DefaultSeries)
				if fetchErr != nil {
					return fetchErr
				}

				record := make([]string, 0, len(header))
				record = append(record, time.Now().UTC().Format(time.RFC3339))

				for _, name := range metrics.DefaultSeries {
					record = append(record, strconv.FormatFloat(values[name], 'g', -1, 64))
				}

				if err := writer.Write(record); err != nil {
					return fmt.Errorf("writing CSV record: %w", err)
				}

				// Flush per poll so a later Ctrl-C loses nothing.
				writer.Flush()

				if err := writer.Error(); err != nil {
					return fmt.Errorf("flushing CSV: %w", err)
				}

				recorded++

				o.Verbosef("recorded %d", recorded)

				if *maxRecords > 0 && recorded >= *maxRecords {
					break
				}

				select {
				case <-ctx.Done():
					o.Println("recorded", recorded, "records")

					return nil
				case <-time.After(*delay):
				}
			}

			o.Println("recorded", recorded, "records")

			return nil
		},
	}
}
