// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// parallelism counts the CPUs in this process's affinity mask, which
// reflects taskset and cpuset restrictions that /proc/cpuinfo does not.
func parallelism() (int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0, fmt.Errorf("sched_getaffinity: %w", err)
	}
	return set.Count(), nil
}
