// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/momeni/car-rental/internal/test/dbmock"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHasher struct{}

func (fakeHasher) Hash(pass, salt string, iters int) (string, error) {
	return "SCRAM-SHA-256$15000:c2FsdA==$" + pass + ":key", nil
}

func TestSchemaManagement(t *testing.T) {
	m := dbmock.New(t)
	ctx := context.Background()
	q := schemarp.New(fakeHasher{}, "_test").Conn(m.Conn())

	m.ExpectExec(`DROP SCHEMA IF EXISTS "crweb1" RESTRICT`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectExec(`CREATE SCHEMA "crweb1"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectQuery(`SELECT count\(\*\) > 0 FROM pg_roles WHERE rolname = \$1`).
		WithArgs("crweb_test").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(false))
	m.ExpectExec(`CREATE ROLE "crweb_test" LOGIN`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectExec(`GRANT ALL PRIVILEGES ON SCHEMA "crweb1" TO "crweb_test"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectExec(`ALTER ROLE "crweb_test" SET search_path TO "crweb1"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, q.DropIfExists(ctx, "crweb1"))
	require.NoError(t, q.CreateSchema(ctx, "crweb1"))
	require.NoError(t, q.CreateRoleIfNotExists(ctx, repo.NormalRole))
	require.NoError(t, q.GrantPrivileges(ctx, "crweb1", repo.NormalRole))
	require.NoError(t, q.SetSearchPath(ctx, "crweb1", repo.NormalRole))
}

func TestExistingRoleIsKept(t *testing.T) {
	m := dbmock.New(t)
	m.ExpectQuery(`FROM pg_roles`).WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(true))
	q := schemarp.New(fakeHasher{}, "").Conn(m.Conn())
	assert.NoError(t, q.CreateRoleIfNotExists(
		context.Background(), repo.AdminRole,
	))
}

func TestChangePasswords(t *testing.T) {
	m := dbmock.New(t)
	m.ExpectExec(
		`ALTER ROLE "admin" WITH PASSWORD 'SCRAM-SHA-256\$15000:c2FsdA==\$p1:key'`,
	).WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectExec(
		`ALTER ROLE "crweb" WITH PASSWORD 'SCRAM-SHA-256\$15000:c2FsdA==\$p2:key'`,
	).WillReturnResult(sqlmock.NewResult(0, 0))

	q := schemarp.New(fakeHasher{}, "").Tx(m.Tx())
	ctx := context.Background()
	roles := []repo.Role{repo.AdminRole, repo.NormalRole}
	require.NoError(t, q.ChangePasswords(ctx, roles, []string{"p1", "p2"}))
	assert.Error(t, q.ChangePasswords(ctx, roles, []string{"p1"}))
	assert.Error(t, q.ChangePasswords(
		ctx, roles[:1], []string{"it's"},
	), "quotes may not be sent to the DBMS")
}
