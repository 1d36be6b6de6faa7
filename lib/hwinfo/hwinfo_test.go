// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/nix-remote/lib/builder"
)

// fakeProber returns fixed values.
type fakeProber struct {
	machine        string
	machineErr     error
	parallelism    int
	parallelismErr error
}

func (f fakeProber) Machine() (string, error) {
	return f.machine, f.machineErr
}

func (f fakeProber) Parallelism() (int, error) {
	return f.parallelism, f.parallelismErr
}

func testLogger(buffer *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNixArch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		machine   string
		wantArch  string
		wantKnown bool
	}{
		{machine: "arm64", wantArch: "aarch64", wantKnown: true},
		{machine: "aarch64", wantArch: "aarch64", wantKnown: true},
		{machine: "x86_64", wantArch: "x86_64", wantKnown: true},
		{machine: "riscv64", wantArch: "riscv64", wantKnown: false},
		{machine: "", wantArch: "", wantKnown: false},
	}

	for _, testCase := range tests {
		arch, known := NixArch(testCase.machine)
		if arch != testCase.wantArch || known != testCase.wantKnown {
			t.Errorf("NixArch(%q) = (%q, %v), want (%q, %v)",
				testCase.machine, arch, known, testCase.wantArch, testCase.wantKnown)
		}
	}
}

func TestLinuxSystem(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"arm64":   "aarch64-linux",
		"x86_64":  "x86_64-linux",
		"riscv64": "riscv64-linux",
	}
	for machine, want := range tests {
		if got := LinuxSystem(machine); got != want {
			t.Errorf("LinuxSystem(%q) = %q, want %q", machine, got, want)
		}
	}
}

func TestProbe_SystemMatchesLinuxSystem(t *testing.T) {
	t.Parallel()

	for _, machine := range []string{"arm64", "aarch64", "x86_64", "riscv64"} {
		platform, err := Probe(fakeProber{machine: machine, parallelism: 2}, testLogger(&bytes.Buffer{}))
		if err != nil {
			t.Fatalf("Probe(%q): %v", machine, err)
		}
		if platform.System != LinuxSystem(machine) {
			t.Errorf("Probe(%q).System = %q, want %q", machine, platform.System, LinuxSystem(machine))
		}
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	platform, err := Probe(fakeProber{machine: "arm64", parallelism: 10}, testLogger(&logs))
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}

	want := Platform{Machine: "arm64", Arch: "aarch64", System: "aarch64-linux", Parallelism: 10}
	if platform != want {
		t.Errorf("Probe() = %+v, want %+v", platform, want)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected log output for a known machine: %s", logs.String())
	}
}

func TestProbe_UnknownMachinePassesThrough(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	platform, err := Probe(fakeProber{machine: "riscv64", parallelism: 4}, testLogger(&logs))
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if platform.System != "riscv64-linux" {
		t.Errorf("System = %q, want riscv64-linux", platform.System)
	}
	if !strings.Contains(logs.String(), "unrecognized hardware name") {
		t.Errorf("expected a diagnostic for the unknown machine, got %q", logs.String())
	}
}

func TestProbe_MachineFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	platform, err := Probe(fakeProber{
		machineErr:  errors.New("uname: operation not permitted"),
		parallelism: 2,
	}, testLogger(&logs))
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if platform.Machine != runtimeMachine() {
		t.Errorf("Machine = %q, want runtime fallback %q", platform.Machine, runtimeMachine())
	}
	if !strings.HasSuffix(platform.System, "-linux") {
		t.Errorf("System = %q, want a linux system", platform.System)
	}
	if !strings.Contains(logs.String(), "operation not permitted") {
		t.Errorf("expected the uname error to be logged, got %q", logs.String())
	}
}

func TestProbe_ParallelismFailureIsFatal(t *testing.T) {
	t.Parallel()

	cause := errors.New("sched_getaffinity: invalid argument")
	_, err := Probe(fakeProber{machine: "x86_64", parallelismErr: cause}, testLogger(&bytes.Buffer{}))
	if err == nil {
		t.Fatal("Probe succeeded, want error")
	}
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want wrapped %v", err, cause)
	}
	if !strings.Contains(err.Error(), "estimating parallelism") {
		t.Errorf("error = %v, want 'estimating parallelism' context", err)
	}
}

func TestProbe_ZeroParallelismIsFatal(t *testing.T) {
	t.Parallel()

	_, err := Probe(fakeProber{machine: "x86_64", parallelism: 0}, testLogger(&bytes.Buffer{}))
	if err == nil {
		t.Fatal("Probe succeeded with zero CPUs, want error")
	}
}

func TestNativeBuilder(t *testing.T) {
	t.Parallel()

	got, err := NativeBuilder(fakeProber{machine: "x86_64", parallelism: 6}, testLogger(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("NativeBuilder: %v", err)
	}
	want := builder.Encode(builder.LinuxBuilder("x86_64-linux", 6))
	if line := builder.Encode(got); line != want {
		t.Errorf("NativeBuilder encodes as %q, want %q", line, want)
	}
}

func TestHost(t *testing.T) {
	t.Parallel()

	count, err := Host{}.Parallelism()
	if err != nil {
		t.Fatalf("Parallelism: %v", err)
	}
	if count < 1 {
		t.Errorf("Parallelism() = %d, want at least 1", count)
	}

	name, err := Host{}.Machine()
	if err != nil {
		t.Skipf("uname unavailable: %v", err)
	}
	if name == "" {
		t.Error("Machine() returned an empty hardware name")
	}
}
