// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "nix-remote",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "env",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "env"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"env"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "env" {
		t.Errorf("dispatched to %q, want %q", called, "env")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "nix-remote",
		Subcommands: []*Command{
			{
				Name: "config",
				Subcommands: []*Command{
					{
						Name: "init",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "config init"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"config", "init", "-"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "config init" {
		t.Errorf("dispatched to %q, want %q", called, "config init")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "-" {
		t.Errorf("args = %v, want [-]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var configPath string
	var receivedArgs []string

	command := &Command{
		Name: "exec",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("exec", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "builders file")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			receivedArgs = args
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"--config", "/tmp/b.yaml", "--", "build", "--rebuild"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if configPath != "/tmp/b.yaml" {
		t.Errorf("config = %q, want %q", configPath, "/tmp/b.yaml")
	}
	if strings.Join(receivedArgs, " ") != "build --rebuild" {
		t.Errorf("args = %v, want [build --rebuild]", receivedArgs)
	}
}

func TestCommand_Execute_LogLevelFlag(t *testing.T) {
	var params struct {
		LoggingParams
	}
	var debugEnabled bool

	command := &Command{
		Name:  "env",
		Flags: func() *pflag.FlagSet { return FlagsFromParams("env", &params) },
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			debugEnabled = logger.Enabled(ctx, slog.LevelDebug)
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--log-level", "debug"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !debugEnabled {
		t.Error("expected debug logging to be enabled by --log-level debug")
	}

	err := command.Execute(context.Background(), []string{"--log-level", "loud"})
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("Execute(--log-level loud) = %v, want invalid log level error", err)
	}
}

func TestCommand_Execute_UnknownCommand(t *testing.T) {
	root := &Command{
		Name: "nix-remote",
		Subcommands: []*Command{
			{Name: "builders", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"bulders"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "builders"`) {
		t.Errorf("error = %q, want suggestion for builders", err)
	}

	err = root.Execute(context.Background(), []string{"completely-different"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, want no suggestion", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	var dryRun bool
	command := &Command{
		Name: "exec",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("exec", pflag.ContinueOnError)
			flagSet.BoolVar(&dryRun, "dry-run", false, "print instead of running")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--dryrun"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --dry-run?") {
		t.Errorf("error = %q, want suggestion for --dry-run", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "config",
		Subcommands: []*Command{
			{Name: "init", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute() = %v, want 'subcommand required'", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	root := &Command{
		Name:        "nix-remote",
		Description: "Run nix with remote builders.",
		Subcommands: []*Command{
			{Name: "exec", Summary: "Run nix with the resolved builders"},
			{Name: "env", Summary: "Print NIX_CONFIG"},
		},
		Examples: []Example{
			{Description: "Build on the linux-builder", Command: "nix-remote exec -- build .#hello"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Run nix with remote builders.",
		"Usage:\n  nix-remote <command> [flags]",
		"exec",
		"Print NIX_CONFIG",
		"# Build on the linux-builder",
		"nix-remote exec -- build .#hello",
		"Run 'nix-remote <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_FullNameAndPath(t *testing.T) {
	root := &Command{Name: "nix-remote"}
	config := &Command{Name: "config", parent: root}
	initCommand := &Command{Name: "init", parent: config}

	if got := initCommand.fullName(); got != "nix-remote config init" {
		t.Errorf("fullName() = %q", got)
	}
	if got := initCommand.path(); got != "config/init" {
		t.Errorf("path() = %q, want config/init", got)
	}
	if got := config.path(); got != "config" {
		t.Errorf("path() = %q, want config", got)
	}
}
