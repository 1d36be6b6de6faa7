// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    slog.Level
		wantErr bool
	}{
		{value: "", want: slog.LevelInfo},
		{value: "info", want: slog.LevelInfo},
		{value: "DEBUG", want: slog.LevelDebug},
		{value: "trace", want: slog.LevelDebug},
		{value: "warn", want: slog.LevelWarn},
		{value: "warning", want: slog.LevelWarn},
		{value: "error", want: slog.LevelError},
		{value: "verbose", wantErr: true},
	}

	for _, test := range tests {
		got, err := ParseLevel(test.value)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q) succeeded, want error", test.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", test.value, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", test.value, got, test.want)
		}
	}
}

func TestNewCommandLogger(t *testing.T) {
	t.Parallel()

	logger, err := NewCommandLogger("warn")
	if err != nil {
		t.Fatalf("NewCommandLogger: %v", err)
	}
	if logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !logger.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("warn disabled at warn level")
	}

	if _, err := NewCommandLogger("nope"); err == nil {
		t.Error("expected error for invalid level")
	}
}
