// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/scram"
)

// HashIterations is the number of SCRAM iterations which are used for
// hashing of role passwords, as recommended by the RFC 7677.
const HashIterations = 15000

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func roleIdent(roleSuffix, role repo.Role) string {
	return ident(string(role) + string(roleSuffix))
}

func exec[Q postgres.Queryer](ctx context.Context, q Q, sql string) error {
	if err := q.GORM(ctx).Exec(sql).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

// DropIfExists drops the `schema` schema without cascading if it
// exists. That is, if `schema` does not exist, a nil error will be
// returned without any change. And if `schema` exists and is empty,
// it will be dropped. But if `schema` exists and is not empty, an
// error will be returned.
func DropIfExists[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	return exec(ctx, q, "DROP SCHEMA IF EXISTS "+ident(schema)+" RESTRICT")
}

// CreateSchema tries to create the `schema` schema.
// There must be no other schema with the `schema` name, otherwise,
// this operation will fail.
func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	return exec(ctx, q, "CREATE SCHEMA "+ident(schema))
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. The login option is enabled for the created role,
// but no password is set for it.
//
// The `role` role name is suffixed by `roleSuffix` if it is not
// empty. This is useful to have distinct role names if repo.Role
// predefined constants are not desirable.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	name := string(role) + string(roleSuffix)
	var exists bool
	err := q.GORM(ctx).Raw(
		"SELECT count(*) > 0 FROM pg_roles WHERE rolname = ?", name,
	).Scan(&exists).Error
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if exists {
		return nil
	}
	return exec(ctx, q, "CREATE ROLE "+ident(name)+" LOGIN")
}

// GrantPrivileges grants ALL privileges on the `schema` schema
// to the `role` role, so it may create or access tables in that schema
// and run relevant queries.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	return exec(ctx, q, fmt.Sprintf(
		"GRANT ALL PRIVILEGES ON SCHEMA %s TO %s",
		ident(schema), roleIdent(roleSuffix, role),
	))
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone.
func SetSearchPath[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	return exec(ctx, q, fmt.Sprintf(
		"ALTER ROLE %s SET search_path TO %s",
		roleIdent(roleSuffix, role), ident(schema),
	))
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
//
// The `hasher` is used for hashing of the `passwords` before sending
// them to the DBMS, so they may not leak in plaintext. Its output
// must conform with the DBMS expected SCRAM format.
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"got %d roles and %d passwords", len(roles), len(passwords),
		)
	}
	for i, role := range roles {
		h, err := hasher.Hash(passwords[i], "", HashIterations)
		if err != nil {
			return fmt.Errorf("hashing password of %q: %w", role, err)
		}
		if strings.ContainsAny(h, `'\`) {
			return errors.New("hashed password contains quotes")
		}
		err = exec(ctx, tx, fmt.Sprintf(
			"ALTER ROLE %s WITH PASSWORD '%s'",
			roleIdent(roleSuffix, role), h,
		))
		if err != nil {
			return fmt.Errorf("altering role %q: %w", role, err)
		}
	}
	return nil
}
