// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema interface
// making it possible to create or drop the crwebN schema and manage
// the database roles which use it.
package schemarp

import (
	"context"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/scram"
)

// Repo represents a schema management repository.
// Role names are suffixed by roleSuffix, so multiple deployments may
// share one database server, and passwords are hashed by hasher
// before being sent to the DBMS.
type Repo struct {
	hasher     scram.Hasher
	roleSuffix repo.Role
}

// New instantiates a schema management Repo struct.
func New(hasher scram.Hasher, roleSuffix repo.Role) *Repo {
	return &Repo{hasher: hasher, roleSuffix: roleSuffix}
}

// Conn unwraps c which must be a *postgres.Conn, so it panics for
// connections of other adapters.
func (schema *Repo) Conn(c repo.Conn) repo.SchemaConnQueryer {
	return queryer[*postgres.Conn]{
		q: c.(*postgres.Conn), roleSuffix: schema.roleSuffix,
	}
}

// Tx unwraps tx which must be a *postgres.Tx, so it panics for
// transactions of other adapters. Password changes of the returned
// queryer become visible when tx commits.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	return txQueryer{
		queryer: queryer[*postgres.Tx]{
			q: tx.(*postgres.Tx), roleSuffix: schema.roleSuffix,
		},
		hasher: schema.hasher,
	}
}

type queryer[Q postgres.Queryer] struct {
	q          Q
	roleSuffix repo.Role
}

func (sq queryer[Q]) DropIfExists(ctx context.Context, schema string) error {
	return DropIfExists(ctx, sq.q, schema)
}

func (sq queryer[Q]) CreateSchema(ctx context.Context, schema string) error {
	return CreateSchema(ctx, sq.q, schema)
}

func (sq queryer[Q]) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, sq.q, sq.roleSuffix, role)
}

func (sq queryer[Q]) GrantPrivileges(
	ctx context.Context, schema string, role repo.Role,
) error {
	return GrantPrivileges(ctx, sq.q, sq.roleSuffix, schema, role)
}

func (sq queryer[Q]) SetSearchPath(
	ctx context.Context, schema string, role repo.Role,
) error {
	return SetSearchPath(ctx, sq.q, sq.roleSuffix, schema, role)
}

type txQueryer struct {
	queryer[*postgres.Tx]
	hasher scram.Hasher
}

func (tq txQueryer) ChangePasswords(
	ctx context.Context, roles []repo.Role, passwords []string,
) error {
	return ChangePasswords(
		ctx, tq.q, tq.roleSuffix, tq.hasher, roles, passwords,
	)
}
