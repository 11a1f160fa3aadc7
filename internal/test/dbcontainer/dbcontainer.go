// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer starts a temporary postgres:16 container for the
// integration test suites and connects a *postgres.Pool to it.
// A docker compatible daemon is found with the DOCKER_HOST variable,
// e.g., DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock for
// podman. Tests are skipped if no container can be started.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration/sch1v0"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/stretchr/testify/require"
)

// codeStartingUp is returned while the DBMS is not ready yet.
const codeStartingUp = "57P03"

// Container is a running PostgreSQL container and a pool which is
// connected to it. Both are released by the test cleanup.
type Container struct {
	PG   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
}

// Start runs the container and waits at most timeout until it accepts
// connections. The ctx is also used for shutting down the container
// when t finishes.
func Start(ctx context.Context, t *testing.T, timeout time.Duration) *Container {
	t.Helper()
	startCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(startCtx, "16")
	if err != nil {
		t.Skipf("no test database container: %v", err)
	}
	t.Cleanup(func() {
		require.NoError(t, pg.Shutdown(ctx), "shutting down test database")
	})
	c := &Container{PG: pg}
	for c.Pool == nil {
		c.Pool, err = postgres.NewPool(startCtx, pg.ConnectionString())
		if retryable(startCtx, err) {
			continue
		}
		require.NoError(t, err, "connecting to test database")
	}
	t.Cleanup(func() {
		require.NoError(t, c.Pool.Close(), "closing test database pool")
	})
	return c
}

func retryable(ctx context.Context, err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == codeStartingUp
	}
	var netErr net.Error
	return ctx.Err() == nil && errors.As(err, &netErr)
}

// InitDev creates the tables of the current schema version and fills
// them with the development cars, locations, and bookings.
func (c *Container) InitDev(ctx context.Context) error {
	return c.Pool.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		return cn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return sch1v0.New(tx).InitDevSchema(ctx)
		})
	})
}
