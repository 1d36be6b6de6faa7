// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package builder models Nix remote build machines and encodes them
// into the positional line format Nix reads from its "builders"
// setting.
//
// A builder line has eight whitespace-separated positions:
//
//	host systems private-key max-builds speed-factor features mandatory-features public-key
//
// Nix parses the line positionally. An absent value is written as "-".
// List values are comma-joined, and the public key is Base64-encoded.
// The format has no quoting, so [Builder.Validate] rejects values that
// would shift positions or split the line.
package builder

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/crypto/ssh"
)

// Builder describes one machine Nix may dispatch builds to.
//
// The zero value is a builder with an empty host and every optional
// field absent. It encodes, but does not validate: nix needs a host. Builders are treated as immutable once constructed:
// code that needs a variant copies the record and replaces slices
// rather than modifying them in place.
type Builder struct {
	// Host is the store URI, e.g. "ssh-ng://builder@linux-builder".
	Host string `yaml:"host" json:"host"`

	// Systems lists the Nix platform identifiers the machine builds
	// for, e.g. "aarch64-linux". Empty means the local platform.
	Systems []string `yaml:"systems" json:"systems"`

	// PrivateKey is the path of the SSH identity used to log in.
	PrivateKey *string `yaml:"private_key" json:"private_key"`

	// MaxBuilds is the number of builds Nix runs on the machine in
	// parallel.
	MaxBuilds *int `yaml:"max_builds" json:"max_builds"`

	// SpeedFactor weighs this machine against others of the same type.
	SpeedFactor *float64 `yaml:"speed_factor" json:"speed_factor"`

	// Features are optional system features the machine supports.
	Features []string `yaml:"features" json:"features"`

	// MandatoryFeatures must all appear in a derivation's
	// requiredSystemFeatures for the machine to be used.
	MandatoryFeatures []string `yaml:"mandatory_features" json:"mandatory_features"`

	// PublicKey is the machine's SSH host key as an authorized-keys
	// line. It is stored as text and Base64-encoded on output.
	PublicKey *string `yaml:"public_key" json:"public_key"`
}

// String returns the host, which is how builders are identified in logs.
func (b Builder) String() string {
	return b.Host
}

// PublicKeyFingerprint returns the SHA256 fingerprint of the builder's
// public key in the "SHA256:..." form printed by ssh-keygen. Returns ""
// if the key is absent or cannot be parsed.
func (b Builder) PublicKeyFingerprint() string {
	if b.PublicKey == nil {
		return ""
	}
	key, _, _, _, err := ssh.ParseAuthorizedKey([]byte(*b.PublicKey))
	if err != nil {
		return ""
	}
	return ssh.FingerprintSHA256(key)
}

// Validate reports every value that cannot be written unambiguously
// into a builder line. All problems are returned together, each
// prefixed with the offending field name.
func (b Builder) Validate() error {
	var errs []error

	if b.Host == "" {
		errs = append(errs, fmt.Errorf("host: empty"))
	} else if err := checkScalar(b.Host); err != nil {
		errs = append(errs, fmt.Errorf("host: %w", err))
	}

	errs = append(errs, checkList("systems", b.Systems)...)

	if b.PrivateKey != nil {
		if *b.PrivateKey == "" {
			errs = append(errs, fmt.Errorf("private_key: empty path"))
		} else if err := checkScalar(*b.PrivateKey); err != nil {
			errs = append(errs, fmt.Errorf("private_key: %w", err))
		}
	}

	if b.MaxBuilds != nil && *b.MaxBuilds < 0 {
		errs = append(errs, fmt.Errorf("max_builds: must not be negative, got %d", *b.MaxBuilds))
	}

	if b.SpeedFactor != nil {
		speedFactor := *b.SpeedFactor
		if math.IsNaN(speedFactor) || math.IsInf(speedFactor, 0) {
			errs = append(errs, fmt.Errorf("speed_factor: must be a finite number, got %v", speedFactor))
		} else if speedFactor < 0 {
			errs = append(errs, fmt.Errorf("speed_factor: must not be negative, got %v", speedFactor))
		}
	}

	errs = append(errs, checkList("features", b.Features)...)
	errs = append(errs, checkList("mandatory_features", b.MandatoryFeatures)...)

	if b.PublicKey != nil {
		if _, _, _, _, err := ssh.ParseAuthorizedKey([]byte(*b.PublicKey)); err != nil {
			errs = append(errs, fmt.Errorf("public_key: not an OpenSSH public key: %w", err))
		}
	}

	return errors.Join(errs...)
}

// separators are the characters that delimit positions on a builder
// line (whitespace), machines within the builders setting (";"), and
// the start of a comment in nix.conf ("#").
const separators = " \t\r\n;#"

// checkScalar rejects a value that would split into several positions,
// end the setting early, or read back as absent.
func checkScalar(value string) error {
	if value == Placeholder {
		return fmt.Errorf("%q means absent", Placeholder)
	}
	if index := strings.IndexAny(value, separators); index >= 0 {
		return fmt.Errorf("contains %q", value[index:index+1])
	}
	if strings.Contains(value, listSeparator) {
		return fmt.Errorf("contains %q", listSeparator)
	}
	return nil
}

// checkList validates each element of a comma-joined list field.
func checkList(field string, values []string) []error {
	var errs []error
	for index, value := range values {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s[%d]: empty value", field, index))
			continue
		}
		if err := checkScalar(value); err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", field, index, err))
		}
	}
	return errs
}
