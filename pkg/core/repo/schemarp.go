// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaInitializer creates the tables of one schema version in the
// transaction which it wraps, filling them with the sample cars,
// locations, and bookings (InitDevSchema) or leaving them empty
// for a production deployment (InitProdSchema).
type SchemaInitializer interface {
	InitDevSchema(ctx context.Context) error
	InitProdSchema(ctx context.Context) error
}

// Schema is the repository which manages the database schema and
// roles during an installation.
type Schema interface {
	Conn(Conn) SchemaConnQueryer
	Tx(Tx) SchemaTxQueryer
}

// SchemaConnQueryer lists the schema operations which may run with
// auto-committed statements of a connection.
type SchemaConnQueryer interface {
	SchemaQueryer
}

// SchemaTxQueryer lists the schema operations which may run in a
// transaction. ChangePasswords belongs here, so the new passwords of
// all roles are stored together or not at all.
type SchemaTxQueryer interface {
	SchemaQueryer

	// ChangePasswords sets passwords[i] as the password of roles[i].
	// Both slices must have the same length. Role names may be
	// suffixed by the implementation.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}

// SchemaQueryer lists the operations which are common between
// SchemaConnQueryer and SchemaTxQueryer. Schema names must be trusted
// strings (they are not passed as query parameters) and role names
// may be suffixed by the implementation.
type SchemaQueryer interface {
	// DropIfExists drops schema if it exists and is empty. A non-empty
	// schema is not dropped and an error is returned.
	DropIfExists(ctx context.Context, schema string) error

	// CreateSchema creates the schema which must not exist.
	CreateSchema(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates a login role without a password.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants ALL privileges on schema to role.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath makes schema the default search_path of role.
	SetSearchPath(ctx context.Context, schema string, role Role) error
}
