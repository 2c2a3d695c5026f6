// Command anonymize-log replaces cluster IDs and IP addresses in log text
// with salted hashes.
package main

import (
	"os"

	"aggutils/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args, os.Environ(), cli.NewAnonymizeLog))
}
