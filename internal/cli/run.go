package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"aggutils/internal/config"
)

// Main is the shared entry point for every binary in this module. It loads
// the layered configuration, wires SIGINT/SIGTERM into the command context,
// and runs the command built by build. Returns the process exit code.
func Main(args []string, environ []string, build func(cfg config.Config) *Command) int {
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	workDir, err := os.Getwd()
	if err != nil {
		fprintln(os.Stderr, "error: cannot get working directory:", err)

		return 1
	}

	cfg, err := config.Load(workDir, env)
	if err != nil {
		fprintln(os.Stderr, "error:", err)

		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	o := NewIO(os.Stdout, os.Stderr)

	code := build(cfg).Run(ctx, o, args[1:])
	if code != 0 {
		return code
	}

	return o.Finish()
}
