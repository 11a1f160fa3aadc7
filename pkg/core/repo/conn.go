// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is a function which runs its statements in one
// transaction. Returning an error (or panicking) rolls back the
// transaction and returning nil commits it.
type TxHandler func(context.Context, Tx) error

// Conn is a database connection which is acquired from a Pool.
// Statements which run on a Conn directly are committed one by one,
// so operations which check and then write (like the overlap check
// before a booking insertion) should use Tx instead.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn prevents a Tx from implementing the Conn interface.
	IsConn()
}
