// Command anonymize scrubs sensitive info nodes from rule-engine result
// files and renumbers them.
package main

import (
	"os"

	"aggutils/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args, os.Environ(), cli.NewAnonymize))
}
