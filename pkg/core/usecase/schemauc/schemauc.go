// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemauc provides the database schema initialization use
// case. It may be used to (re)create the crwebN schema and fill it
// with development or production suitable data, as asked by the
// InitDev and InitProd methods.
//
// This package also exposes the Settings interface which represents
// the expectations of this use case from the configuration file, so
// the configuration adapter can be passed to it directly.
package schemauc

import (
	"context"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// Settings represents the database-related settings which should
// be provided by a configuration file. It allows a database connection
// pool to be established for an asked role using the ConnectionPool
// method, reports the database schema version, changes passwords of a
// set of database roles while storing the new passwords in the
// passwords file, and acts as a factory for the repo.Schema and
// repo.SchemaInitializer instances.
type Settings interface {
	// ConnectionPool creates a database connection pool for the `r`
	// role. Password values are kept in a passwords file with the
	// following line format:
	//
	//	host:port:dbname:role:password
	//
	// A temporary passwords file may hold the renewed passwords if
	// a previous initialization was interrupted. If it is used for
	// connecting to the database, it is moved over the main file.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// NewSchemaRepo instantiates a fresh Schema repository.
	NewSchemaRepo() repo.Schema

	// SchemaInitializer creates a repo.SchemaInitializer instance
	// which wraps the given transaction argument and can be used to
	// create tables and fill them with development or production
	// suitable data.
	SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error)

	// RenewPasswords generates new secure passwords for the given roles
	// and after recording them in a temporary file, will use the change
	// function in order to update the passwords of those roles in the
	// database too. The returned finalizer moves the temporary file
	// over the main passwords file and must be called after the change
	// function transaction commits.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)

	// SchemaVersion returns the semantic version of the database schema.
	SchemaVersion() model.SemVer
}

// UseCase represents the database initialization use case.
type UseCase struct {
	settings   Settings    // target settings
	schemaRepo repo.Schema // schema management repo
}

// New creates a UseCase instance, using the `ss` settings in order to
// find the target database connection information and its schema
// initializer.
func New(ss Settings) *UseCase {
	return &UseCase{
		settings:   ss,
		schemaRepo: ss.NewSchemaRepo(),
	}
}

// InitProd drops crwebN schema (if N is the relevant major version)
// and (re)creates it using the admin role. It also creates the normal
// role (if it does not exist), grants privileges on the created schema
// to normal role so it can create tables, and renews passwords of both
// admin and normal roles, all in one transaction.
// Thereafter, it connects to the target database using the normal role
// and completes its operation (in a second transaction) by creating all
// relevant tables with an empty car catalog.
func (uc *UseCase) InitProd(ctx context.Context) error {
	return uc.initDB(
		ctx,
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitProdSchema(ctx)
		},
	)
}

// InitDev works like InitProd, but fills the created tables with
// sample cars and locations which are suitable for development.
func (uc *UseCase) InitDev(ctx context.Context) error {
	return uc.initDB(
		ctx,
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitDevSchema(ctx)
		},
	)
}

func (uc *UseCase) initDB(
	ctx context.Context,
	dbi func(ctx context.Context, si repo.SchemaInitializer) error,
) error {
	if err := uc.dropAndCreateAgain(ctx); err != nil {
		return fmt.Errorf("dropping/recreating schema: %w", err)
	}
	p, err := uc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := uc.settings.SchemaInitializer(tx)
			if err != nil {
				return fmt.Errorf("creating SchemaInitializer: %w", err)
			}
			if err := dbi(ctx, si); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("normal connection: %w", err)
	}
	return nil
}

func (uc *UseCase) dropAndCreateAgain(ctx context.Context) error {
	p, err := uc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer p.Close()
	var finalizer func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.schemaRepo.Tx(tx)
			v := uc.settings.SchemaVersion()
			sn := SchemaName(v[0])
			if err := q.DropIfExists(ctx, sn); err != nil {
				return fmt.Errorf("dropping %q: %w", sn, err)
			}
			if err := q.CreateSchema(ctx, sn); err != nil {
				return fmt.Errorf("creating %q: %w", sn, err)
			}
			if err := q.CreateRoleIfNotExists(
				ctx, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("creating normal role: %w", err)
			}
			if err := q.GrantPrivileges(
				ctx, sn, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("granting normal role privs: %w", err)
			}
			if err := q.SetSearchPath(
				ctx, sn, repo.NormalRole,
			); err != nil {
				return fmt.Errorf(
					"setting search_path of normal role to %q: %w",
					sn, err,
				)
			}
			finalizer, err = uc.settings.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("RenewPasswords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if err := finalizer(); err != nil {
		return fmt.Errorf("finalizing passwords renewal: %w", err)
	}
	return nil
}

// SchemaName returns the target database schema name for the given
// major version. It should return crwebN for version N.
func SchemaName(major uint) string {
	return fmt.Sprintf("crweb%d", major)
}
