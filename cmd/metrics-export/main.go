// Command metrics-export polls a service's Prometheus endpoint and records
// Go runtime metrics into a CSV file.
package main

import (
	"os"

	"aggutils/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args, os.Environ(), cli.NewMetricsExport))
}
