// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that dictate the exit code and
// have already been reported to the user.
type exitCoder interface {
	ExitCode() int
}

// ExitCode returns the exit code for err and whether err still needs
// to be printed. A nil error is code 0.
func ExitCode(err error) (code int, report bool) {
	if err == nil {
		return 0, false
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode(), false
	}
	return 1, true
}

// Report writes "error: err" to w when err needs reporting and returns
// the exit code.
func Report(w io.Writer, err error) int {
	code, report := ExitCode(err)
	if report {
		fmt.Fprintf(w, "error: %v\n", err)
	}
	return code
}

// Exit reports err on stderr and exits with its code. It returns
// normally when err is nil.
func Exit(err error) {
	if err == nil {
		return
	}
	os.Exit(Report(os.Stderr, err))
}
