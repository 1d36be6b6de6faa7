// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nix locates and runs the nix CLI.
//
// The binary is resolved from PATH first (works inside nix develop and
// on NixOS), then from the Determinate Nix profile directory, which
// installers leave off PATH for non-login shells.
//
// Two invocation styles are provided. [Run] captures stdout and folds
// stderr into the returned error, for queries like "nix config show".
// [Exec] connects the child to the caller's terminal and reports a
// non-zero exit as an [*ExitError], for running the user's command.
package nix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// determinateProfileBin is where Determinate Nix installs its binaries.
const determinateProfileBin = "/nix/var/nix/profiles/default/bin"

// FindBinary resolves a Nix binary by name (e.g., "nix"), checking
// PATH first and then the standard Determinate Nix installation
// directory. Returns the absolute path to the binary.
func FindBinary(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	determinatePath := filepath.Join(determinateProfileBin, name)
	if _, err := os.Stat(determinatePath); err == nil {
		return determinatePath, nil
	}

	return "", fmt.Errorf("%s not found on PATH or at %s: install Nix first", name, determinatePath)
}

// Invocation describes one run of "nix <Args>".
type Invocation struct {
	// Args are passed to nix after the binary name.
	Args []string

	// Env is the complete child environment in os.Environ form. Nil
	// inherits the caller's environment.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ExitError reports that nix ran and exited non-zero. The CLI exits
// with the same code without printing anything further: nix has
// already explained the failure on stderr.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("nix exited with code %d", e.Code)
}

// ExitCode returns the child's exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Command resolves the nix binary and returns an unstarted command for
// invocation.
func Command(ctx context.Context, invocation Invocation) (*exec.Cmd, error) {
	binaryPath, err := FindBinary("nix")
	if err != nil {
		return nil, err
	}

	command := exec.CommandContext(ctx, binaryPath, invocation.Args...)
	command.Env = invocation.Env
	command.Stdin = invocation.Stdin
	command.Stdout = invocation.Stdout
	command.Stderr = invocation.Stderr
	return command, nil
}

// Exec runs invocation to completion. A non-zero exit is returned as
// *ExitError; failure to start is returned as-is.
func Exec(ctx context.Context, invocation Invocation) error {
	command, err := Command(ctx, invocation)
	if err != nil {
		return err
	}

	err = command.Run()
	var exitError *exec.ExitError
	if errors.As(err, &exitError) && exitError.ExitCode() > 0 {
		return &ExitError{Code: exitError.ExitCode()}
	}
	if err != nil {
		return fmt.Errorf("running nix %s: %w", strings.Join(invocation.Args, " "), err)
	}
	return nil
}

// Run executes "nix <args>" with env (nil inherits) and returns stdout.
// Stderr is captured and included in the error on failure.
func Run(ctx context.Context, env []string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command, err := Command(ctx, Invocation{
		Args:   args,
		Env:    env,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return "", err
	}

	if err := command.Run(); err != nil {
		return "", formatError("nix", args, &stderr, err)
	}
	return stdout.String(), nil
}

// formatError produces an error message for a failed nix command,
// preferring stderr output (which contains the actual nix error) over
// the generic exec error.
func formatError(binaryName string, args []string, stderr *bytes.Buffer, err error) error {
	commandString := binaryName + " " + strings.Join(args, " ")
	stderrText := strings.TrimSpace(stderr.String())
	if stderrText != "" {
		return fmt.Errorf("%s: %s", commandString, stderrText)
	}
	return fmt.Errorf("%s: %w", commandString, err)
}
