// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts a GORM database handle (using the pgx driver)
// to the repo.Pool, repo.Conn, and repo.Tx interfaces. Its sub-packages
// implement the repositories, the schema management repository, and
// the versioned schema initializers.
package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
)

// These constants represent the major, minor, and patch components of
// the current database schema semantic version. Each schema major
// version is initialized by one migration/schNvM package.
const (
	Major = 1 // latest supported schema major version
	Minor = 0 // latest schema minor version in Major series
	Patch = 0 // latest schema patch version in Minor series
)

// Version is the latest supported database schema semantic version.
var Version = model.SemVer{Major, Minor, Patch}

// PostgreSQL error codes which are translated by TranslateError.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
)

// TranslateError wraps the constraint violation errors of the DBMS in
// cerr.Error instances, so they are reported with a suitable status
// code. Unique violations become cerr.Conflict errors, foreign key
// violations become cerr.BadRequest errors wrapping the
// model.ErrUnknownReference, and check violations become
// cerr.BadRequest errors. Other errors are returned as is.
func TranslateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case CodeUniqueViolation:
		return cerr.Conflict(
			fmt.Errorf("constraint %s: %w", pgErr.ConstraintName, err),
		)
	case CodeForeignKeyViolation:
		return cerr.BadRequest(fmt.Errorf(
			"constraint %s: %w: %w",
			pgErr.ConstraintName, model.ErrUnknownReference, err,
		))
	case CodeCheckViolation:
		return cerr.BadRequest(
			fmt.Errorf("constraint %s: %w", pgErr.ConstraintName, err),
		)
	default:
		return err
	}
}

// ConstraintName returns the name of the violated constraint if err
// wraps a PostgreSQL error. Otherwise, it returns an empty string.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
