// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role is a database role name which is used for connecting to the
// DBMS. Its password is read from the pass-dir of the configuration
// and is renewed whenever the database is initialized.
type Role string

// Database roles which are expected by the crweb binary.
const (
	// AdminRole is a pre-existing super user which creates the
	// NormalRole, the crwebN schema, and grants the privileges.
	// It is used by the db init-dev and init-prod commands alone.
	AdminRole Role = "admin"

	// NormalRole owns the tables of the crwebN schema and runs all
	// queries of the bookings, payments, cars, and notifications
	// use cases.
	NormalRole Role = "crweb"
)
