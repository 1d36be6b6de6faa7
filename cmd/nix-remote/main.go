// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// nix-remote runs nix with builder machines resolved from a
// configuration file and the local linux-builder VM.
package main

import (
	"context"
	"os"

	"github.com/bureau-foundation/nix-remote/cmd/nix-remote/commands"
	"github.com/bureau-foundation/nix-remote/lib/process"
)

func main() {
	// nix and commands that print their own output return an error
	// carrying the exit code; process.Exit skips the "error:" line
	// for those.
	process.Exit(run())
}

func run() error {
	// No signal-bound context: nix receives terminal signals directly
	// and decides how to shut down its own builds.
	return commands.Root(commands.OSProcess()).Execute(context.Background(), os.Args[1:])
}
