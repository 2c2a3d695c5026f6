// Command gen-messages derives well-formed messages with fresh identifiers
// from a single input message.
package main

import (
	"os"

	"aggutils/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args, os.Environ(), cli.NewGenMessages))
}
