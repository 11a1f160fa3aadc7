// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration maps the database schema versions to the packages
// which create their tables, so the schema use cases depend on the
// version-independent repo.SchemaInitializer interface alone.
package migration

import (
	"fmt"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration/sch1v0"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

type schema struct {
	latest model.SemVer
	init   func(repo.Tx) repo.SchemaInitializer
}

// schemas lists the latest known version of each major version.
var schemas = map[uint]schema{
	sch1v0.Major: {
		latest: model.SemVer{sch1v0.Major, sch1v0.Minor, sch1v0.Patch},
		init: func(tx repo.Tx) repo.SchemaInitializer {
			return sch1v0.New(tx)
		},
	},
}

func lookup(v model.SemVer) (schema, error) {
	s, ok := schemas[v[0]]
	switch {
	case !ok:
		return schema{}, fmt.Errorf("unsupported major: %d", v[0])
	case v[1] > s.latest[1]:
		return schema{}, fmt.Errorf("unsupported minor: %d", v[1])
	}
	return s, nil
}

// LatestVersion returns the latest known version which has the same
// major version as v. Minor versions newer than the known ones fail.
func LatestVersion(v model.SemVer) (model.SemVer, error) {
	s, err := lookup(v)
	return s.latest, err
}

// NewInitializer returns the initializer of the v schema version which
// creates its tables in the tx transaction. The caller commits tx.
func NewInitializer(tx repo.Tx, v model.SemVer) (repo.SchemaInitializer, error) {
	s, err := lookup(v)
	if err != nil {
		return nil, err
	}
	return s.init(tx), nil
}
