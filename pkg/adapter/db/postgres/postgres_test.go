// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	wrap := func(code, constraint string) error {
		return fmt.Errorf("query: %w", &pgconn.PgError{
			Code: code, ConstraintName: constraint,
		})
	}

	err := postgres.TranslateError(wrap(postgres.CodeUniqueViolation, "payments_bid_key"))
	assert.True(t, cerr.Is(err, http.StatusConflict))
	assert.Equal(t, "payments_bid_key", postgres.ConstraintName(err))

	err = postgres.TranslateError(wrap(postgres.CodeForeignKeyViolation, "bookings_cid_fkey"))
	assert.True(t, cerr.Is(err, http.StatusBadRequest))
	assert.ErrorIs(t, err, model.ErrUnknownReference)

	err = postgres.TranslateError(wrap(postgres.CodeCheckViolation, "cars_status_check"))
	assert.True(t, cerr.Is(err, http.StatusBadRequest))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, postgres.TranslateError(plain))
	assert.Empty(t, postgres.ConstraintName(plain))
	assert.Equal(t, 500, cerr.StatusCode(wrap("40001", "")))
}
