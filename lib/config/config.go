// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/nix-remote/lib/builder"
)

// FileName is the base name of the builders file.
const FileName = "builders.yaml"

// Default is the content written by [WriteDefault]: a documented file
// with no builders.
//
//go:embed builders.yaml
var Default string

// File is the decoded builders file.
type File struct {
	// Builders are the remote machines, in file order.
	Builders []builder.Builder `yaml:"builders" json:"builders"`

	// UseSubstitutes controls builders-use-substitutes. Absent means true.
	UseSubstitutes *bool `yaml:"use_substitutes" json:"use_substitutes"`
}

// SubstitutesEnabled reports whether builders should fetch
// dependencies from substituters themselves.
func (f *File) SubstitutesEnabled() bool {
	return f.UseSubstitutes == nil || *f.UseSubstitutes
}

// ParseError is returned for any failure to read, decode, or validate
// a builders file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DefaultPath returns $XDG_CONFIG_HOME/nix/builders.yaml, falling back
// to ~/.config/nix/builders.yaml when XDG_CONFIG_HOME is unset or not
// absolute.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if !filepath.IsAbs(configHome) {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "nix", FileName), nil
}

// LoadFile reads the builders file at path. A missing file yields an
// empty File. Decoding rejects unknown keys; every builder is
// validated after private key paths are expanded.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	file, err := Parse(data, formatFromPath(path))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return file, nil
}

// Format selects the decoder for a builders file.
type Format int

const (
	// YAML is the default format.
	YAML Format = iota
	// JSONC is JSON with comments and trailing commas.
	JSONC
)

func formatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return JSONC
	default:
		return YAML
	}
}

// Parse decodes and validates builders file content.
func Parse(data []byte, format Format) (*File, error) {
	var file File
	var err error
	switch format {
	case JSONC:
		err = decodeJSONC(data, &file)
	default:
		err = decodeYAML(data, &file)
	}
	if err != nil {
		return nil, err
	}

	var errs []error
	for index := range file.Builders {
		entry := &file.Builders[index]
		if entry.PrivateKey != nil {
			expanded, err := expandPath(*entry.PrivateKey)
			if err != nil {
				errs = append(errs, fmt.Errorf("builders[%d] (%s): private_key: %w", index, entry.Host, err))
				continue
			}
			entry.PrivateKey = &expanded
		}
		if err := entry.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("builders[%d] (%s): %w", index, entry.Host, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &file, nil
}

// decodeYAML decodes a single YAML document. An empty document (or one
// holding only comments) decodes to the zero File.
func decodeYAML(data []byte, file *File) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decoding YAML: %w", err)
	}

	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding YAML: expected a single document")
	}
	return nil
}

// decodeJSONC strips comments and trailing commas, then decodes a
// single JSON object.
func decodeJSONC(data []byte, file *File) error {
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(file); err != nil {
		return fmt.Errorf("decoding JSON: %w", err)
	}
	if decoder.More() {
		return fmt.Errorf("decoding JSON: unexpected content after the top-level object")
	}
	return nil
}

// expandPath expands a leading ~ and ${VAR} / ${VAR:-default} references.
func expandPath(path string) (string, error) {
	return homedir.Expand(expandVars(path))
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces ${VAR} with the environment value and
// ${VAR:-default} with the default when VAR is unset or empty.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// WriteDefault writes [Default] to path. A path of "-" writes to
// stdout instead. An existing file is never overwritten.
func WriteDefault(path string, stdout io.Writer) error {
	if path == "-" {
		_, err := io.WriteString(stdout, Default)
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if _, err := io.WriteString(file, Default); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}
