// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hwinfo probes the local machine for the facts needed to
// describe its native Linux build helper: the hardware name reported
// by uname(2), translated into a Nix architecture, and the number of
// CPUs this process may run on.
//
// # Failure policy
//
// The two probes fail differently. An unreadable or unrecognized
// hardware name is not fatal: [Probe] logs it and falls back to the
// raw value (or the Go runtime's architecture), since Nix may know
// architectures this package does not. A parallelism failure is fatal,
// because max-builds derived from a guess would silently over- or
// under-subscribe the builder.
//
// # Platforms
//
// uname(2) is read through golang.org/x/sys/unix on Linux and Darwin.
// Parallelism comes from sched_getaffinity(2) on Linux (honouring
// taskset and cpuset restrictions) and the hw.activecpu sysctl on
// Darwin. Other platforms report runtime.NumCPU.
package hwinfo
