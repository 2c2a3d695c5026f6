// Command gen-broken-messages generates JSON messages with exactly one
// field-level corruption each.
package main

import (
	"os"

	"aggutils/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args, os.Environ(), cli.NewGenBrokenMessages))
}
