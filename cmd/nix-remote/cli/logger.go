// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	logLevelFlag = "log-level"

	// LogLevelEnvironment supplies the --log-level default.
	LogLevelEnvironment = "NIX_REMOTE_LOG"
)

// LoggingParams adds --log-level to a command. Embed it in a params
// struct; [BindFlags] calls AddFlags and [Command.Execute] reads the
// parsed value back when building the logger.
type LoggingParams struct {
	LogLevel string
}

// AddFlags implements [FlagBinder].
func (p *LoggingParams) AddFlags(flagSet *pflag.FlagSet) {
	defaultLevel := os.Getenv(LogLevelEnvironment)
	if defaultLevel == "" {
		defaultLevel = "info"
	}
	flagSet.StringVar(&p.LogLevel, logLevelFlag, defaultLevel,
		"log level: debug, info, warn, or error (env "+LogLevelEnvironment+")")
}

// ParseLevel converts a --log-level value to a slog.Level. The empty
// string means info.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (want debug, info, warn, or error)", value)
	}
}

// NewCommandLogger creates a structured logger for CLI command operations.
// When stderr is a terminal, uses slog.TextHandler for human-readable output.
// When stderr is piped or redirected (CI, scripts, direnv hooks), uses
// slog.JSONHandler for machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger = logger.With("config", configPath)
func NewCommandLogger(level string) (*slog.Logger, error) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	options := &slog.HandlerOptions{Level: parsed}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler), nil
}
