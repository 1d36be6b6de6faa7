// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for nix-remote.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree by package commands
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, logger construction, and structured help output
// with examples.
//
// Flags are usually declared as tagged struct fields and bound with
// [FlagsFromParams]. Commands embed [LoggingParams], which adds
// --log-level (defaulting to $NIX_REMOTE_LOG, then "info"); Execute
// reads it back to build the *slog.Logger handed to Run.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
package cli
