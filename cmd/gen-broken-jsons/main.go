// Command gen-broken-jsons generates invalid JSON fixtures by corrupting the
// text lines of a well-formed document.
package main

import (
	"os"

	"aggutils/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args, os.Environ(), cli.NewGenBrokenJSONs))
}
