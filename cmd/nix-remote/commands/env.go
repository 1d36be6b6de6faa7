// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/nix-remote/cmd/nix-remote/cli"
	"github.com/bureau-foundation/nix-remote/lib/nix"
	"github.com/bureau-foundation/nix-remote/lib/resolve"
)

type envParams struct {
	commonParams
	Shell bool `flag:"shell,s" desc:"print an export statement for eval"`
	Check bool `flag:"check" desc:"ask nix which builders it sees with the resolved NIX_CONFIG"`
}

func envCommand(process *Process) *cli.Command {
	var params envParams
	return &cli.Command{
		Name:    "env",
		Summary: "Print the resolved NIX_CONFIG",
		Description: `Print the NIX_CONFIG value nix-remote would hand to nix. With
--shell, print it as an export statement suitable for eval. With
--check, run "nix config show builders" under the resolved
configuration and print what nix reports.`,
		Examples: []cli.Example{
			{Command: `eval "$(nix-remote env --shell)"`},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("env", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}

			resolved, err := process.resolve(&params.commonParams, logger)
			if err != nil {
				return err
			}

			if params.Check {
				return checkBuilders(ctx, process, resolved)
			}

			if params.Shell {
				_, err = fmt.Fprintf(process.Stdout, "export %s=%s\n", resolve.EnvironmentVariable, shellQuote(resolved.Text))
				return err
			}
			_, err = io.WriteString(process.Stdout, resolved.Text)
			return err
		},
	}
}

// checkBuilders prints the builders setting nix reports under the
// resolved environment. An empty setting means nix discarded the
// resolved value (for example a nix.conf override), which is reported
// on stderr and exits 1.
func checkBuilders(ctx context.Context, process *Process, resolved *resolve.Resolved) error {
	output, err := nix.Run(ctx, resolved.Environ(process.Environ), "config", "show", "builders")
	if err != nil {
		return err
	}
	if strings.TrimSpace(output) == "" {
		fmt.Fprintf(process.Stderr, "nix reports no builders (resolved %d)\n", len(resolved.Builders))
		return &cli.ExitError{Code: 1}
	}
	_, err = io.WriteString(process.Stdout, output)
	return err
}

// shellQuote wraps value in single quotes for POSIX shells.
func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
