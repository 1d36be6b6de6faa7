// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/nix-remote/cmd/nix-remote/cli"
	"github.com/bureau-foundation/nix-remote/lib/builder"
)

type buildersParams struct {
	commonParams
	JSON bool `flag:"json" desc:"print builders as JSON"`
}

// builderEntry is one row of "nix-remote builders --json".
type builderEntry struct {
	builder.Builder
	Line        string `json:"line"`
	Fingerprint string `json:"public_key_fingerprint,omitempty"`
}

func buildersCommand(process *Process) *cli.Command {
	var params buildersParams
	return &cli.Command{
		Name:    "builders",
		Summary: "List the resolved builders",
		Description: `List every builder nix will be given, in order: the builders
from the configuration file followed by the local linux-builder.`,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("builders", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}

			resolved, err := process.resolve(&params.commonParams, logger)
			if err != nil {
				return err
			}

			if params.JSON {
				entries := make([]builderEntry, len(resolved.Builders))
				for index, entry := range resolved.Builders {
					entries[index] = builderEntry{
						Builder:     entry,
						Line:        resolved.Lines[index],
						Fingerprint: entry.PublicKeyFingerprint(),
					}
				}
				encoder := json.NewEncoder(process.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}

			writer := tabwriter.NewWriter(process.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(writer, "HOST\tSYSTEMS\tMAX BUILDS\tFEATURES\tHOST KEY\n")
			for _, entry := range resolved.Builders {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
					entry.Host,
					listOrDash(entry.Systems),
					intOrDash(entry.MaxBuilds),
					listOrDash(entry.Features),
					orDash(entry.PublicKeyFingerprint()),
				)
			}
			return writer.Flush()
		},
	}
}

func listOrDash(values []string) string {
	return orDash(strings.Join(values, ","))
}

func intOrDash(value *int) string {
	if value == nil {
		return builder.Placeholder
	}
	return strconv.Itoa(*value)
}

func orDash(value string) string {
	if value == "" {
		return builder.Placeholder
	}
	return value
}
