// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Placeholder is written for any absent value or empty list.
	Placeholder = "-"

	// fieldSeparator separates positions on a builder line.
	fieldSeparator = " "

	// listSeparator joins the elements of list-valued positions.
	listSeparator = ","
)

// field is one position on a builder line. The fields table below is
// the only place the position order is defined; Encode and Decode both
// walk it.
type field struct {
	name   string
	encode func(Builder) string
	decode func(*Builder, string) error
}

var fields = [...]field{
	{
		name:   "host",
		encode: func(b Builder) string { return b.Host },
		decode: func(b *Builder, value string) error {
			b.Host = value
			return nil
		},
	},
	{
		name:   "systems",
		encode: func(b Builder) string { return encodeList(b.Systems) },
		decode: func(b *Builder, value string) error {
			b.Systems = decodeList(value)
			return nil
		},
	},
	{
		name:   "private_key",
		encode: func(b Builder) string { return encodeOptional(b.PrivateKey) },
		decode: func(b *Builder, value string) error {
			b.PrivateKey = decodeOptional(value)
			return nil
		},
	},
	{
		name: "max_builds",
		encode: func(b Builder) string {
			if b.MaxBuilds == nil {
				return Placeholder
			}
			return strconv.Itoa(*b.MaxBuilds)
		},
		decode: func(b *Builder, value string) error {
			if value == Placeholder {
				return nil
			}
			maxBuilds, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			b.MaxBuilds = &maxBuilds
			return nil
		},
	},
	{
		name: "speed_factor",
		encode: func(b Builder) string {
			if b.SpeedFactor == nil {
				return Placeholder
			}
			return strconv.FormatFloat(*b.SpeedFactor, 'f', -1, 64)
		},
		decode: func(b *Builder, value string) error {
			if value == Placeholder {
				return nil
			}
			speedFactor, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return err
			}
			b.SpeedFactor = &speedFactor
			return nil
		},
	},
	{
		name:   "features",
		encode: func(b Builder) string { return encodeList(b.Features) },
		decode: func(b *Builder, value string) error {
			b.Features = decodeList(value)
			return nil
		},
	},
	{
		name:   "mandatory_features",
		encode: func(b Builder) string { return encodeList(b.MandatoryFeatures) },
		decode: func(b *Builder, value string) error {
			b.MandatoryFeatures = decodeList(value)
			return nil
		},
	},
	{
		name: "public_key",
		encode: func(b Builder) string {
			if b.PublicKey == nil {
				return Placeholder
			}
			return base64.StdEncoding.EncodeToString([]byte(*b.PublicKey))
		},
		decode: func(b *Builder, value string) error {
			if value == Placeholder {
				return nil
			}
			raw, err := base64.StdEncoding.DecodeString(value)
			if err != nil {
				return err
			}
			publicKey := string(raw)
			b.PublicKey = &publicKey
			return nil
		},
	},
}

// FieldNames returns the builder line positions in order.
func FieldNames() []string {
	names := make([]string, len(fields))
	for index, field := range fields {
		names[index] = field.name
	}
	return names
}

// Encode renders b as a single builder line. Encode does not validate:
// callers that accept user input run [Builder.Validate] first.
func Encode(b Builder) string {
	var line strings.Builder
	for index, field := range fields {
		if index > 0 {
			line.WriteString(fieldSeparator)
		}
		line.WriteString(field.encode(b))
	}
	return line.String()
}

// EncodeAll encodes each builder, preserving order.
func EncodeAll(builders []Builder) []string {
	lines := make([]string, len(builders))
	for index, b := range builders {
		lines[index] = Encode(b)
	}
	return lines
}

// Decode parses a line produced by [Encode]. Positions are separated
// by exactly one space, so an empty host (a line starting with a
// space) survives the round trip. Trailing positions may be omitted
// and decode as absent.
func Decode(line string) (Builder, error) {
	values := strings.Split(line, fieldSeparator)
	if len(values) > len(fields) {
		return Builder{}, fmt.Errorf("builder line has %d fields, want at most %d", len(values), len(fields))
	}

	var b Builder
	for index, value := range values {
		if err := fields[index].decode(&b, value); err != nil {
			return Builder{}, fmt.Errorf("%s: %w", fields[index].name, err)
		}
	}
	return b, nil
}

func encodeList(values []string) string {
	if len(values) == 0 {
		return Placeholder
	}
	return strings.Join(values, listSeparator)
}

func decodeList(value string) []string {
	if value == Placeholder {
		return nil
	}
	return strings.Split(value, listSeparator)
}

func encodeOptional(value *string) string {
	if value == nil {
		return Placeholder
	}
	return *value
}

func decodeOptional(value string) *string {
	if value == Placeholder {
		return nil
	}
	return &value
}
