// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"strings"
	"testing"

	"github.com/momeni/car-rental/pkg/adapter/hash/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	m := scram.SHA256()
	const salt = "c2FsdHlzYWx0eXNhbHR5c2FsdHk="
	h1, err := m.Hash("pencil", salt, 4096)
	require.NoError(t, err)
	h2, err := m.Hash("pencil", salt, 4096)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "fixed salts must give the same verifier")
	assert.True(t, strings.HasPrefix(h1, "SCRAM-SHA-256$4096:"+salt+"$"), h1)

	h3, err := m.Hash("pencil", "", 4096)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3, "random salts are expected")

	h4, err := scram.SHA1().Hash("pencil", salt, 4096)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h4, "SCRAM-SHA-1$"), h4)
}

func TestHashErrors(t *testing.T) {
	m := scram.SHA1()
	_, err := m.Hash("", "", 4096)
	assert.ErrorIs(t, err, scram.ErrEmptyPassword)
	_, err = m.Hash("pencil", "", 100)
	assert.ErrorIs(t, err, scram.ErrFewIterations)
	_, err = m.Hash("pencil", "not base64!", 4096)
	assert.ErrorContains(t, err, "base64")
}
