// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package paymentsrp_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/momeni/car-rental/internal/test/dbmock"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/paymentsrp"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForBookingWithoutPayment(t *testing.T) {
	m := dbmock.New(t)
	bid := uuid.New()
	m.ExpectQuery(`SELECT \* FROM "payments" WHERE bid = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"pid"}))
	p, err := paymentsrp.New().Conn(m.Conn()).ForBooking(
		context.Background(), bid,
	)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFindCompletedForBooking(t *testing.T) {
	m := dbmock.New(t)
	pid, bid := uuid.New(), uuid.New()
	paidAt := time.Date(2030, 6, 1, 9, 30, 15, 0, time.UTC)
	m.ExpectQuery(
		`SELECT \* FROM "payments" WHERE \(bid = \$1 AND status = \$2\)`,
	).WillReturnRows(sqlmock.NewRows([]string{
		"pid", "bid", "user_id", "transaction_id", "payment_reference",
		"amount", "method", "status", "paid_at", "card_last4",
		"card_brand", "invoice_url", "invoice_generated", "created_at",
	}).AddRow(
		pid.String(), bid.String(), "u1", "TXN20300601093015ABCDEF01",
		"PAY-20300601093015", "177.00", "credit-card", "completed", paidAt,
		"4242", "Visa", "https://citycars.az/invoices/TXN1.pdf", true,
		paidAt,
	))
	p, err := paymentsrp.New().Tx(m.Tx()).FindCompletedForBooking(
		context.Background(), bid,
	)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, pid, p.ID)
	assert.Equal(t, model.PaymentMethodCreditCard, p.Method)
	assert.Equal(t, model.PaymentStatusCompleted, p.Status)
	assert.Equal(t, "4242", p.CardLast4)
	require.NotNil(t, p.PaidAt)
	assert.True(t, paidAt.Equal(*p.PaidAt))
}

func TestGetNotFound(t *testing.T) {
	m := dbmock.New(t)
	m.ExpectQuery(`SELECT \* FROM "payments" WHERE pid = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"pid"}))
	_, err := paymentsrp.New().Conn(m.Conn()).Get(
		context.Background(), uuid.New(),
	)
	assert.ErrorIs(t, err, model.ErrPaymentNotFound)
	assert.True(t, cerr.Is(err, http.StatusNotFound))
}
