// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the nix-remote command tree.
//
// Every command that resolves builders shares [commonParams] (the
// --config and --log-level flags) and goes through [Process.resolve],
// so exec, env, and builders always agree on what nix would see.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bureau-foundation/nix-remote/cmd/nix-remote/cli"
	"github.com/bureau-foundation/nix-remote/lib/config"
	"github.com/bureau-foundation/nix-remote/lib/hwinfo"
	"github.com/bureau-foundation/nix-remote/lib/resolve"
	"github.com/bureau-foundation/nix-remote/lib/version"
)

// Process is the slice of process state the commands touch. Tests
// build one with buffers, a fixed environment, and a fake prober.
type Process struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Environ is the environment in os.Environ form. Child processes
	// inherit it with NIX_CONFIG replaced.
	Environ []string

	Prober hwinfo.Prober
}

// OSProcess returns a Process bound to the real stdio, environment,
// and machine.
func OSProcess() *Process {
	return &Process{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ(),
		Prober:  hwinfo.Host{},
	}
}

// lookup finds name in the process environment. The last entry wins,
// matching how the kernel hands duplicates to a child.
func (p *Process) lookup(name string) (string, bool) {
	value, found := "", false
	for _, entry := range p.Environ {
		if rest, ok := strings.CutPrefix(entry, name+"="); ok {
			value, found = rest, true
		}
	}
	return value, found
}

// commonParams are the flags shared by every command that reads the
// builders file.
type commonParams struct {
	cli.LoggingParams
	Config string `flag:"config,c" desc:"builders file (default $XDG_CONFIG_HOME/nix/builders.yaml)"`
}

// configPath returns the --config value or the default location.
func (p *commonParams) configPath() (string, error) {
	if p.Config != "" {
		return p.Config, nil
	}
	return config.DefaultPath()
}

// resolve loads the builders file named by params and resolves it
// against the process environment and machine.
func (p *Process) resolve(params *commonParams, logger *slog.Logger) (*resolve.Resolved, error) {
	path, err := params.configPath()
	if err != nil {
		return nil, err
	}
	logger = logger.With("path", path)

	file, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded builders file", "builders", len(file.Builders))

	resolver := &resolve.Resolver{Prober: p.Prober, Logger: logger}
	return resolver.Resolve(file, p.lookup)
}

// Root builds the complete nix-remote command tree.
func Root(process *Process) *cli.Command {
	return &cli.Command{
		Name: "nix-remote",
		Description: `nix-remote: run nix with remote builders.

Reads builder machines from a YAML or JSONC file, adds the local
linux-builder VM sized for this machine, and hands the result to nix
through NIX_CONFIG. The caller's environment is never modified.`,
		Subcommands: []*cli.Command{
			execCommand(process),
			envCommand(process),
			buildersCommand(process),
			configCommand(process),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					_, err := fmt.Fprintf(process.Stdout, "nix-remote %s\n", version.Full())
					return err
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Build a flake output using the configured builders",
				Command:     "nix-remote exec -- build .#packages.x86_64-linux.default",
			},
			{
				Description: "Export the builders into the current shell",
				Command:     `eval "$(nix-remote env --shell)"`,
			},
			{
				Description: "Show which machines nix will use",
				Command:     "nix-remote builders",
			},
		},
	}
}
