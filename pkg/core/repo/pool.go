// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// ConnHandler is a function which uses an acquired connection.
type ConnHandler func(context.Context, Conn) error

// Pool is a database connections pool. Each Conn call acquires one
// connection, passes it to the handler, and releases it afterwards.
// Use cases keep a Pool and the repositories which they need, and
// pass the acquired Conn (or Tx) to the repository Conn/Tx methods.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}
