// Command openapi-check verifies that an OpenAPI document carries a
// description on every endpoint, method, parameter, and response.
package main

import (
	"os"

	"aggutils/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args, os.Environ(), cli.NewOpenAPICheck))
}
