// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers parses the versions section of a configuration file
// before the rest of it, so a binary can reject a file or a database
// schema whose format it does not know, instead of misreading it.
package vers

import (
	"fmt"

	"github.com/momeni/car-rental/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config may be inlined in a configuration struct to hold its
// versions section.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions holds the database schema and configuration file versions.
type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// MismatchError reports a version which differs from the Expected one.
type MismatchError struct {
	Expected, Actual model.SemVer
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected v%s, but got v%s", e.Expected, e.Actual)
}

// Load reads the versions section of the data YAML document, ignoring
// its other sections.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate accepts a configuration version with the given major and
// a minor version which is not newer than minor.
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	if v[0] != major {
		return fmt.Errorf("incompatible major version: %d", v[0])
	}
	if v[1] > minor {
		return fmt.Errorf("unsupported minor version: %d", v[1])
	}
	return nil
}

// RequireDatabase ensures that the database schema version is exactly
// equal to v, returning a *MismatchError otherwise.
func (vc *Config) RequireDatabase(v model.SemVer) error {
	if vc.Versions.Database != v {
		return &MismatchError{Expected: v, Actual: vc.Versions.Database}
	}
	return nil
}
