// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings contains the generic helpers which are used by the
// config package for filling default values of the optional settings
// and clamping them into their acceptable ranges, besides the
// human-readable Duration type.
package settings

import (
	"strings"
	"time"
)

// Duration is a time.Duration which is read from a config file in the
// time.ParseDuration format, like 1h30m or 500ms.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler. The d is updated
// only if data could be parsed.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// String formats d like time.Duration.String, but drops the trailing
// zero units, so 2h0m0s is written as 2h and 1m30s stays as is.
func (d Duration) String() string {
	s := time.Duration(d).String()
	s, _ = strings.CutSuffix(s, "m0s")
	if trimmed, ok := strings.CutSuffix(s, "h0"); ok {
		return trimmed + "h"
	}
	if strings.HasSuffix(s, "h") || strings.HasSuffix(s, "s") {
		return s
	}
	return s + "m"
}

// MarshalText implements encoding.TextMarshaler using String.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
