// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/nix-remote/cmd/nix-remote/cli"
	"github.com/bureau-foundation/nix-remote/lib/config"
)

func configCommand(process *Process) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Summary: "Manage the builders file",
		Subcommands: []*cli.Command{
			configInitCommand(process),
			configPathCommand(process),
		},
	}
}

func configInitCommand(process *Process) *cli.Command {
	var params commonParams
	return &cli.Command{
		Name:    "init",
		Summary: "Write a commented example builders file",
		Description: `Write the example builders file to the given path, to the
--config path, or to the default location. A path of "-" prints it
to stdout. An existing file is never overwritten.`,
		Usage: "nix-remote config init [flags] [path|-]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("init", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most one path, got %d arguments", len(args))
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				var err error
				if path, err = params.configPath(); err != nil {
					return err
				}
			}

			if err := config.WriteDefault(path, process.Stdout); err != nil {
				return err
			}
			if path != "-" {
				logger.Info("wrote builders file", "path", path)
			}
			return nil
		},
	}
}

func configPathCommand(process *Process) *cli.Command {
	var params commonParams
	return &cli.Command{
		Name:    "path",
		Summary: "Print the builders file path in effect",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("path", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			path, err := params.configPath()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(process.Stdout, path)
			return err
		},
	}
}
