// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemVer(t *testing.T) {
	for text, exp := range map[string]model.SemVer{
		"1.2.3": {1, 2, 3},
		"1.4":   {1, 4, 0},
		"2":     {2, 0, 0},
	} {
		var sv model.SemVer
		require.NoError(t, sv.UnmarshalText([]byte(text)), text)
		assert.Equal(t, exp, sv)
	}
	sv := model.SemVer{7, 7, 7}
	for _, bad := range []string{"", "1.2.3.4", "1.x", "-1.0.0", "1..2"} {
		assert.Error(t, sv.UnmarshalText([]byte(bad)), bad)
	}
	assert.Equal(t, model.SemVer{7, 7, 7}, sv, "must be kept on errors")
	assert.Equal(t, "7.7.7", sv.String())
}
