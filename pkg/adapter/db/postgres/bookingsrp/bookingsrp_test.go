// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsrp_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/momeni/car-rental/internal/test/dbmock"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/bookingsrp"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExistsOverlap(t *testing.T) {
	m := dbmock.New(t)
	cid, bid := uuid.New(), uuid.New()
	m.ExpectQuery(
		`SELECT count\(\*\) > 0 FROM "bookings" WHERE \(cid = \$1 AND status NOT IN \(\$2,\$3\) AND start_date <= \$4 AND end_date >= \$5\) AND bid <> \$6 AND "bookings"."deleted_at" IS NULL`,
	).WithArgs(
		cid, "cancelled", "rejected",
		date(2030, 6, 5), date(2030, 6, 3), bid,
	).WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(true))

	q := bookingsrp.New().Conn(m.Conn())
	overlap, err := q.ExistsOverlap(
		context.Background(), cid,
		time.Date(2030, 6, 3, 15, 0, 0, 0, time.UTC),
		date(2030, 6, 5), &bid,
	)
	require.NoError(t, err)
	assert.True(t, overlap)
}

func TestLockCar(t *testing.T) {
	m := dbmock.New(t)
	cid := uuid.New()
	m.ExpectExec(
		`SELECT pg_advisory_xact_lock\(hashtextextended\(\$1, 0\)\)`,
	).WithArgs(cid.String()).WillReturnResult(sqlmock.NewResult(0, 1))
	err := bookingsrp.New().Tx(m.Tx()).LockCar(context.Background(), cid)
	assert.NoError(t, err)
}

func TestGetByNumberNotFound(t *testing.T) {
	m := dbmock.New(t)
	m.ExpectQuery(
		`SELECT \* FROM "bookings" WHERE booking_number = \$1`,
	).WillReturnRows(
		sqlmock.NewRows([]string{"bid"}),
	)
	_, err := bookingsrp.New().Conn(m.Conn()).GetByNumber(
		context.Background(), "BK20300601ABCDEF",
	)
	assert.ErrorIs(t, err, model.ErrBookingNotFound)
	assert.True(t, cerr.Is(err, http.StatusNotFound))
}

func TestGetForUpdate(t *testing.T) {
	m := dbmock.New(t)
	bid, cid, lid := uuid.New(), uuid.New(), uuid.New()
	m.ExpectQuery(
		`SELECT \* FROM "bookings" WHERE bid = \$1 .*FOR UPDATE`,
	).WillReturnRows(sqlmock.NewRows([]string{
		"bid", "user_id", "cid", "booking_number", "start_date", "end_date",
		"total_days", "price_per_day", "sub_total", "tax_amount",
		"total_amount", "pickup_location_id", "return_location_id",
		"with_gps", "status", "contact_email", "created_at",
	}).AddRow(
		bid.String(), "u1", cid.String(), "BK20300601ABCDEF",
		date(2030, 6, 3), date(2030, 6, 5),
		3, "50.00", "150.00", "27.00", "177.00", lid.String(), lid.String(),
		true, "in-progress", "u1@example.com", time.Now(),
	))
	b, err := bookingsrp.New().Tx(m.Tx()).GetForUpdate(
		context.Background(), bid,
	)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusInProgress, b.Status)
	assert.Equal(t, 3, b.TotalDays)
	assert.Equal(t, "177", b.TotalAmount.String())
	assert.True(t, b.WithGPS)
	assert.Equal(t, date(2030, 6, 5), b.EndDate)
}

func TestListByUserError(t *testing.T) {
	m := dbmock.New(t)
	errBroken := errors.New("broken pipe")
	m.ExpectQuery(
		`SELECT \* FROM "bookings" WHERE user_id = \$1 .*ORDER BY created_at DESC`,
	).WillReturnError(errBroken)
	_, err := bookingsrp.New().Conn(m.Conn()).ListByUser(
		context.Background(), "u1",
	)
	assert.ErrorIs(t, err, errBroken)
}
