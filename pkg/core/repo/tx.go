// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx is a database transaction which must not be used concurrently.
// A READ-COMMITTED isolation is expected, so repositories which need
// to serialize writers (e.g., bookings of one car) take explicit
// locks within the transaction.
type Tx interface {
	Queryer

	// IsTx prevents a Conn from implementing the Tx interface.
	IsTx()
}
