// Package cmd implements the vdom CLI commands.
//
// Every command resolves the optional vdom.yaml of the project it runs in
// (see internal/config) and reports failures as *errors.Error values so the
// caller can print them through the installed error handler.
package cmd

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/go-drift/vdom/cmd/vdom/internal/config"
	"github.com/go-drift/vdom/pkg/errors"
)

// Version information set at build time.
var Version = "0.1.0-dev"

const (
	dirKey     = "dir"
	verboseKey = "verbose"
)

// New returns the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:    "vdom",
		Usage:   "Render and benchmark virtual node trees on an in-memory surface",
		Version: Version,
		Commands: []*cli.Command{
			renderCommand(),
			demoCommand(),
			benchCommand(),
			envCommand(),
		},
	}
}

// configFlags are shared by every command.
func configFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:  dirKey,
			Usage: "project directory holding vdom.yaml (default: nearest directory with vdom.yaml or go.mod)",
		},
		&cli.BoolFlag{
			Name:  verboseKey,
			Usage: "include stack traces in error reports",
		},
	}, extra...)
}

// setup resolves the configuration and installs the error handler.
func setup(cmd *cli.Command) (*config.Resolved, error) {
	dir := cmd.String(dirKey)
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return nil, errors.Wrap("vdom.config", errors.KindConfig, err)
		}
		dir = root
	}

	cfg, err := config.Resolve(dir, os.Stdout)
	if err != nil {
		return nil, errors.Wrap("vdom.config", errors.KindConfig, err)
	}
	if cmd.Bool(verboseKey) {
		cfg.Verbose = true
	}
	errors.SetHandler(&errors.LogHandler{Verbose: cfg.Verbose})
	return cfg, nil
}

// output is where commands print results.
func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
