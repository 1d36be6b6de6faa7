// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux || darwin

package hwinfo

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// machine returns the hardware name field of uname(2).
func machine() (string, error) {
	var utsname unix.Utsname
	if err := unix.Uname(&utsname); err != nil {
		return "", fmt.Errorf("uname: %w", err)
	}
	return unix.ByteSliceToString(utsname.Machine[:]), nil
}
