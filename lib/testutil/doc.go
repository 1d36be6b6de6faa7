// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for nix-remote packages.
//
// [WriteFile] creates a file with fixed content in a per-test temporary
// directory. [FakeBinary] installs an executable shell script at the
// front of PATH so tests can stand in for nix without a Nix
// installation; the PATH change is undone when the test completes.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no nix-remote-internal dependencies.
package testutil
