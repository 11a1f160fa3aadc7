// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package locationsrp implements the repo.Locations interface for the
// pickup and return branches which are kept in the locations table.
package locationsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (locations *Repo) Conn(c repo.Conn) repo.LocationsConnQueryer {
	return connQueryer{Conn: c.(*postgres.Conn)}
}

func (cq connQueryer) Get(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	return Get(ctx, cq.Conn, id)
}

type txQueryer struct {
	*postgres.Tx
}

func (locations *Repo) Tx(tx repo.Tx) repo.LocationsTxQueryer {
	return txQueryer{Tx: tx.(*postgres.Tx)}
}

func (tq txQueryer) Get(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	return Get(ctx, tq.Tx, id)
}
