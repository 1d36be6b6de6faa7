// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux && !darwin

package hwinfo

import (
	"fmt"
	"runtime"
)

func machine() (string, error) {
	return "", fmt.Errorf("uname is not available on %s", runtime.GOOS)
}

func parallelism() (int, error) {
	return runtime.NumCPU(), nil
}
