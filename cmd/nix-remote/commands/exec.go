// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/nix-remote/cmd/nix-remote/cli"
	"github.com/bureau-foundation/nix-remote/lib/nix"
	"github.com/bureau-foundation/nix-remote/lib/resolve"
)

type execParams struct {
	commonParams
	DryRun bool `flag:"dry-run,n" desc:"print the nix command and NIX_CONFIG instead of running"`
}

func execCommand(process *Process) *cli.Command {
	var params execParams
	return &cli.Command{
		Name:    "exec",
		Summary: "Run nix with the resolved builders",
		Description: `Resolve the builders and run "nix <args>" with NIX_CONFIG set
for the child process. Everything after "--" is passed to nix
unchanged. nix's exit code becomes nix-remote's exit code.`,
		Usage: "nix-remote exec [flags] -- <nix args...>",
		Examples: []cli.Example{
			{Command: "nix-remote exec -- build .#hello"},
			{
				Description: "Check what would run",
				Command:     "nix-remote exec --dry-run -- flake check",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := cli.FlagsFromParams("exec", &params)
			// Flags after the first nix argument belong to nix.
			flagSet.SetInterspersed(false)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("no nix arguments given\n\nUsage: nix-remote exec [flags] -- <nix args...>")
			}

			resolved, err := process.resolve(&params.commonParams, logger)
			if err != nil {
				return err
			}

			if params.DryRun {
				fmt.Fprintf(process.Stdout, "%s=%s\n", resolve.EnvironmentVariable, shellQuote(resolved.Text))
				fmt.Fprintf(process.Stdout, "nix %s\n", strings.Join(args, " "))
				return nil
			}

			logger.Debug("running nix", "args", args, "builders", len(resolved.Builders))
			return nix.Exec(ctx, nix.Invocation{
				Args:   args,
				Env:    resolved.Environ(process.Environ),
				Stdin:  process.Stdin,
				Stdout: process.Stdout,
				Stderr: process.Stderr,
			})
		},
	}
}
