// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/momeni/car-rental/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleDuration_String() {
	for _, d := range []time.Duration{
		0,
		90 * time.Second,
		2 * time.Hour,
		time.Hour + 3*time.Second,
		3*time.Hour + 20*time.Minute,
		5 * time.Minute,
	} {
		fmt.Println(settings.Duration(d))
	}
	// Output:
	// 0s
	// 1m30s
	// 2h
	// 1h0m3s
	// 3h20m
	// 5m
}

func TestRange(t *testing.T) {
	r := settings.Between(0.0, 1.0)
	assert.Nil(t, r.Clamp(nil), "unset values are accepted")

	v := 1.5
	err := r.Clamp(&v)
	require.NotNil(t, err)
	assert.False(t, err.Below)
	assert.Equal(t, 1.5, err.Value)
	assert.Equal(t, 1.0, v, "value must be clamped")

	v = -0.5
	err = settings.AtLeast(0.0).Clamp(&v)
	require.NotNil(t, err)
	assert.True(t, err.Below)
	assert.Equal(t, 0.0, v)

	v = 1e9
	assert.Nil(t, settings.AtLeast(0.0).Clamp(&v))
}

func TestDefault(t *testing.T) {
	var flag *bool
	settings.Default(&flag, false)
	require.NotNil(t, flag)
	assert.False(t, *flag)

	var kind *string
	settings.Default(&kind, "log")
	require.NotNil(t, kind)
	assert.Equal(t, "log", *kind)
	settings.Default(&kind, "smtp")
	assert.Equal(t, "log", *kind, "non-nil values are kept")
}
