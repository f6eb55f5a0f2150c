package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

func envCommand() *cli.Command {
	return &cli.Command{
		Name:   "env",
		Usage:  "Print the resolved configuration",
		Flags:  configFlags(),
		Action: runEnv,
	}
}

func runEnv(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	sizes := make([]string, len(cfg.BenchSizes))
	for i, n := range cfg.BenchSizes {
		sizes[i] = fmt.Sprint(n)
	}
	module := cfg.ModulePath
	if module == "" {
		module = "(none)"
	}

	w := output(cmd)
	fmt.Fprintf(w, "root:            %s\n", cfg.Root)
	fmt.Fprintf(w, "project:         %s\n", cfg.Project)
	fmt.Fprintf(w, "module:          %s\n", module)
	fmt.Fprintf(w, "format:          %s\n", cfg.Format)
	fmt.Fprintf(w, "color:           %t\n", cfg.Color)
	fmt.Fprintf(w, "bench.sizes:     %s\n", strings.Join(sizes, ","))
	fmt.Fprintf(w, "bench.iterations: %d\n", cfg.BenchIterations)
	fmt.Fprintf(w, "verbose:         %t\n", cfg.Verbose)
	return nil
}
