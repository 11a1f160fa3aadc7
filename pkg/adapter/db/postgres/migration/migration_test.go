// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migration_test

import (
	"testing"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestVersion(t *testing.T) {
	lv, err := migration.LatestVersion(model.SemVer{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, postgres.Version, lv)

	_, err = migration.LatestVersion(model.SemVer{1, 5, 0})
	assert.Error(t, err)
	_, err = migration.LatestVersion(model.SemVer{2, 0, 0})
	assert.Error(t, err)

	_, err = migration.NewInitializer(nil, model.SemVer{2, 0, 0})
	assert.Error(t, err)
	si, err := migration.NewInitializer(nil, postgres.Version)
	require.NoError(t, err)
	assert.NotNil(t, si)
}
