// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the nix-remote builders file.
//
// The file lists remote builders under a single top-level "builders"
// key. It is YAML by default; files ending in .json or .jsonc are read
// as JSON with comments and trailing commas. Decoding is strict in
// both formats: an unknown key anywhere in the file is an error, so a
// misspelled "max_build" fails loudly instead of silently dropping the
// limit.
//
// A missing file is not an error. It yields an empty [File], and the
// only builder in effect is the native one added by package resolve.
//
// After decoding, private key paths are expanded (~, ${HOME},
// ${VAR:-default}) and every builder is checked with
// [builder.Builder.Validate]. All failures are reported as a
// [*ParseError] carrying the file path.
//
// Key exports:
//
//   - [File] -- the decoded file
//   - [LoadFile] -- read and validate a builders file
//   - [DefaultPath] -- $XDG_CONFIG_HOME/nix/builders.yaml or ~/.config/nix/builders.yaml
//   - [Default] and [WriteDefault] -- the documented starter file
package config
