// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Tx is a transaction which is begun by Conn.Tx. It embeds *gorm.DB,
// so the repository packages may use GORM on it via the GORM method.
type Tx struct {
	*gorm.DB
}

// Exec runs sql with args in the tx transaction. Without args, sql may
// contain several semicolon separated statements (like a schema).
// Both $n and GORM ? or @name placeholders are supported.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return exec(tx.DB.WithContext(ctx), sql, args)
}

// IsTx marks Tx as a repo.Tx implementation.
func (tx *Tx) IsTx() {
}

// GORM returns the embedded *gorm.DB instance, configuring it
// to operate on the given ctx context (in a gorm.Session).
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}

func exec(db *gorm.DB, sql string, args []any) (int64, error) {
	tt := db.Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, TranslateError(err)
	}
	return tt.RowsAffected, nil
}
