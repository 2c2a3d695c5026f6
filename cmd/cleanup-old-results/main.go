// Command cleanup-old-results generates a SQL script that deletes outdated
// reports from the aggregator database.
package main

import (
	"os"

	"aggutils/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args, os.Environ(), cli.NewCleanupOldResults))
}
