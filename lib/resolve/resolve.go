// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolve turns a builders file and the local machine into the
// NIX_CONFIG text handed to nix.
//
// Resolution is all-or-nothing: the builders from the file come first
// in file order, the probed native linux-builder comes last, every
// record is validated and encoded, and the encoded lines are appended
// to whatever NIX_CONFIG the caller already had. Any failure returns
// an error and no partial result.
//
// The process environment is never read or written directly. Callers
// pass a [LookupFunc] in and apply [Resolved.Environ] to the child
// process they spawn.
package resolve

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/nix-remote/lib/builder"
	"github.com/bureau-foundation/nix-remote/lib/config"
	"github.com/bureau-foundation/nix-remote/lib/hwinfo"
)

// EnvironmentVariable is the variable nix reads extra configuration from.
const EnvironmentVariable = "NIX_CONFIG"

// LookupFunc reads an environment variable, like [os.LookupEnv].
type LookupFunc func(name string) (string, bool)

// DecodeError reports a pre-existing NIX_CONFIG that is not valid UTF-8.
type DecodeError struct {
	Raw []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s is not valid UTF-8: %q", EnvironmentVariable, e.Raw)
}

// ExistingConfig returns the caller's current NIX_CONFIG, or "" if it
// is unset.
func ExistingConfig(lookup LookupFunc) (string, error) {
	value, ok := lookup(EnvironmentVariable)
	if !ok {
		return "", nil
	}
	if !utf8.ValidString(value) {
		return "", &DecodeError{Raw: []byte(value)}
	}
	return value, nil
}

// Resolver builds the configuration for one run.
type Resolver struct {
	// Prober describes the local machine for the native builder.
	Prober hwinfo.Prober

	// Logger receives diagnostics. Required.
	Logger *slog.Logger
}

// Resolved is the configuration for one run.
type Resolved struct {
	// Builders are the file builders followed by the native builder.
	Builders []builder.Builder

	// Lines are the encoded Builders, in the same order.
	Lines []string

	// Text is the complete NIX_CONFIG value.
	Text string
}

// Resolve combines file with the native builder and the NIX_CONFIG
// visible through lookup. file may be nil, which is treated as an
// empty builders file.
func (r *Resolver) Resolve(file *config.File, lookup LookupFunc) (*Resolved, error) {
	if file == nil {
		file = &config.File{}
	}

	existing, err := ExistingConfig(lookup)
	if err != nil {
		return nil, err
	}

	native, err := hwinfo.NativeBuilder(r.Prober, r.Logger)
	if err != nil {
		return nil, err
	}

	builders := make([]builder.Builder, 0, len(file.Builders)+1)
	builders = append(builders, file.Builders...)
	builders = append(builders, native)

	var errs []error
	for index, entry := range builders {
		if err := entry.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("builder %d (%s): %w", index, entry.Host, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	lines := builder.EncodeAll(builders)

	r.Logger.Debug("resolved builders",
		"file_builders", len(file.Builders),
		"builders", len(builders),
		"existing_config", existing != "",
	)

	return &Resolved{
		Builders: builders,
		Lines:    lines,
		Text:     Assemble(existing, lines, file.SubstitutesEnabled()),
	}, nil
}

// Assemble appends a builders directive holding lines to existing.
// Machines in the builders setting are separated by ";". When
// substitutes is true, builders-use-substitutes is enabled as well.
func Assemble(existing string, lines []string, substitutes bool) string {
	var text strings.Builder
	text.WriteString(existing)
	text.WriteString("\n\n")
	text.WriteString("builders = ")
	text.WriteString(strings.Join(lines, " ; "))
	text.WriteString("\n")
	if substitutes {
		text.WriteString("builders-use-substitutes = true\n")
	}
	return text.String()
}

// Environ returns a copy of base (in os.Environ form) with NIX_CONFIG
// set to the resolved text. base is not modified.
func (r *Resolved) Environ(base []string) []string {
	prefix := EnvironmentVariable + "="
	environ := make([]string, 0, len(base)+1)
	for _, entry := range base {
		if !strings.HasPrefix(entry, prefix) {
			environ = append(environ, entry)
		}
	}
	return append(environ, prefix+r.Text)
}
