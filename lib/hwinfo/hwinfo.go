// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/bureau-foundation/nix-remote/lib/builder"
)

// Prober reads machine facts from the operating system. [Host] is the
// real implementation; tests substitute fakes.
type Prober interface {
	// Machine returns the hardware name as printed by "uname -m",
	// e.g. "x86_64" or "arm64".
	Machine() (string, error)

	// Parallelism returns the number of CPUs available to this process.
	Parallelism() (int, error)
}

// Host probes the machine this process runs on.
type Host struct{}

// Machine implements [Prober].
func (Host) Machine() (string, error) {
	return machine()
}

// Parallelism implements [Prober].
func (Host) Parallelism() (int, error) {
	return parallelism()
}

// Platform is the result of probing the local machine.
type Platform struct {
	// Machine is the raw hardware name the architecture was derived from.
	Machine string

	// Arch is the Nix architecture, e.g. "aarch64".
	Arch string

	// System is the Nix system the native builder targets, e.g.
	// "aarch64-linux". The OS part is always linux: the native builder
	// is a Linux VM regardless of the host OS.
	System string

	// Parallelism is the number of CPUs available to this process.
	Parallelism int
}

// NixArch translates a uname hardware name into the Nix architecture
// spelling. known is false for names the table does not cover; those
// are returned unchanged.
func NixArch(machine string) (arch string, known bool) {
	switch machine {
	case "arm64", "aarch64":
		return "aarch64", true
	case "x86_64":
		return "x86_64", true
	default:
		return machine, false
	}
}

// LinuxSystem returns the Nix linux system for a uname hardware name,
// e.g. "arm64" → "aarch64-linux".
func LinuxSystem(machine string) string {
	arch, _ := NixArch(machine)
	return arch + "-linux"
}

// Probe reads the hardware name and parallelism from prober. A failed
// hardware-name read is logged and replaced by the Go runtime's
// architecture. A failed or nonsensical parallelism read is returned
// as an error.
func Probe(prober Prober, logger *slog.Logger) (Platform, error) {
	name, err := prober.Machine()
	if err != nil {
		name = runtimeMachine()
		logger.Warn("reading hardware name failed, using runtime architecture",
			"error", err,
			"machine", name,
		)
	}

	arch, known := NixArch(name)
	if !known {
		logger.Debug("unrecognized hardware name, passing through", "machine", name)
	}

	count, err := prober.Parallelism()
	if err != nil {
		return Platform{}, fmt.Errorf("estimating parallelism: %w", err)
	}
	if count < 1 {
		return Platform{}, fmt.Errorf("estimating parallelism: got %d CPUs", count)
	}

	return Platform{
		Machine:     name,
		Arch:        arch,
		System:      LinuxSystem(name),
		Parallelism: count,
	}, nil
}

// NativeBuilder probes the machine and returns the linux-builder record
// sized for it.
func NativeBuilder(prober Prober, logger *slog.Logger) (builder.Builder, error) {
	platform, err := Probe(prober, logger)
	if err != nil {
		return builder.Builder{}, err
	}
	logger.Debug("probed native builder platform",
		"machine", platform.Machine,
		"system", platform.System,
		"max_builds", platform.Parallelism,
	)
	return builder.LinuxBuilder(platform.System, platform.Parallelism), nil
}

// runtimeMachine spells GOARCH the way uname -m does, for use when
// uname itself is unavailable.
func runtimeMachine() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "386":
		return "i686"
	default:
		return runtime.GOARCH
	}
}
