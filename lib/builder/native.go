// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package builder

// Identity of the linux-builder VM from nixpkgs (darwin.linux-builder).
// The VM image ships with this host key, and the nix-darwin module
// installs the matching client key at LinuxBuilderPrivateKey.
const (
	LinuxBuilderHost       = "ssh-ng://builder@linux-builder"
	LinuxBuilderPrivateKey = "/etc/nix/builder_ed25519"
	LinuxBuilderPublicKey  = "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIJBWcxb/Blaqt1auOtE+F8QUWrUotiC5qBJ+UuEWdVCb root@nixos\n"
)

// LinuxBuilder returns the record for the local linux-builder VM
// building for system (e.g. "aarch64-linux") with maxBuilds parallel
// jobs. Every call returns fresh slices and pointers.
func LinuxBuilder(system string, maxBuilds int) Builder {
	privateKey := LinuxBuilderPrivateKey
	publicKey := LinuxBuilderPublicKey
	return Builder{
		Host:       LinuxBuilderHost,
		Systems:    []string{system},
		PrivateKey: &privateKey,
		MaxBuilds:  &maxBuilds,
		Features:   []string{"benchmark", "big-parallel"},
		PublicKey:  &publicKey,
	}
}
