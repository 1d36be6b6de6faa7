// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint helper for nix-remote.
// It owns the one raw I/O pattern that exists after the structured
// logger is gone: reporting the error returned from run() and turning
// it into a process exit code.
//
// Errors that carry their own exit code (nix's exit status, or a
// command that already printed its diagnosis) exit silently with that
// code. Everything else prints "error: <err>" and exits 1.
package process
