// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func parallelism() (int, error) {
	count, err := unix.SysctlUint32("hw.activecpu")
	if err != nil {
		return 0, fmt.Errorf("sysctl hw.activecpu: %w", err)
	}
	return int(count), nil
}
