// Command to-report wraps anonymized rule-engine results into aggregator
// report messages.
package main

import (
	"os"

	"aggutils/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args, os.Environ(), cli.NewToReport))
}
