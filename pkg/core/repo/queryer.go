// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Queryer is the common part of a connection and a transaction which
// can run raw statements. Repositories prefer their typed queries, so
// raw statements are mainly used for schema creation and the sample
// data of the development environment.
type Queryer interface {
	// Exec runs the sql statement(s) with args and returns the number
	// of affected rows.
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
}
