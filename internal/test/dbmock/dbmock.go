// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbmock wraps a go-sqlmock database in the postgres Conn and
// Tx types, so repositories may be tested without a running DBMS.
// Statements are matched with regular expressions.
package dbmock

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Mock holds a GORM handle over a mocked database connection.
type Mock struct {
	sqlmock.Sqlmock
	gdb *gorm.DB
}

// New creates a Mock and registers a cleanup function on t which
// verifies that all expectations were met.
func New(t *testing.T) *Mock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")
	gdb, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn: db,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err, "failed to open gorm over sqlmock")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return &Mock{Sqlmock: mock, gdb: gdb}
}

// Conn returns a connection which runs statements on the mock.
func (m *Mock) Conn() *postgres.Conn {
	return &postgres.Conn{DB: m.gdb}
}

// Tx returns a transaction which runs statements on the mock without
// expecting any BEGIN or COMMIT statement.
func (m *Mock) Tx() *postgres.Tx {
	return &postgres.Tx{DB: m.gdb}
}
