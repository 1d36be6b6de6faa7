// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError is returned by a command that has already written its own
// diagnosis (for example "env --check" when nix sees no builders) and
// only needs the process to exit with Code. main exits silently with
// that code instead of printing "error: ...".
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns Code. lib/process recognizes this method on any
// error in the chain.
func (e *ExitError) ExitCode() int {
	return e.Code
}
