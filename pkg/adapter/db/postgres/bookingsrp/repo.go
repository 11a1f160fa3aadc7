// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsrp implements the repo.Bookings interface over the
// bookings table of a PostgreSQL database.
//
// The overlap check and the booking insertion are serialized per car
// by the LockCar advisory lock, while status changes lock the booking
// row itself using SELECT ... FOR UPDATE.
package bookingsrp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (bookings *Repo) Conn(c repo.Conn) repo.BookingsConnQueryer {
	return connQueryer{Conn: c.(*postgres.Conn)}
}

func (cq connQueryer) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) GetByNumber(ctx context.Context, number string) (*model.Booking, error) {
	return GetByNumber(ctx, cq.Conn, number)
}

func (cq connQueryer) ExistsOverlap(
	ctx context.Context,
	carID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) (bool, error) {
	return ExistsOverlap(ctx, cq.Conn, carID, start, end, excludeID)
}

func (cq connQueryer) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return ListByUser(ctx, cq.Conn, userID)
}

type txQueryer struct {
	*postgres.Tx
}

func (bookings *Repo) Tx(tx repo.Tx) repo.BookingsTxQueryer {
	return txQueryer{Tx: tx.(*postgres.Tx)}
}

func (tq txQueryer) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) GetByNumber(ctx context.Context, number string) (*model.Booking, error) {
	return GetByNumber(ctx, tq.Tx, number)
}

func (tq txQueryer) ExistsOverlap(
	ctx context.Context,
	carID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) (bool, error) {
	return ExistsOverlap(ctx, tq.Tx, carID, start, end, excludeID)
}

func (tq txQueryer) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return ListByUser(ctx, tq.Tx, userID)
}

func (tq txQueryer) LockCar(ctx context.Context, carID uuid.UUID) error {
	return LockCar(ctx, tq.Tx, carID)
}

func (tq txQueryer) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return GetForUpdate(ctx, tq.Tx, id)
}

func (tq txQueryer) Insert(ctx context.Context, b *model.Booking) error {
	return Insert(ctx, tq.Tx, b)
}

func (tq txQueryer) Update(ctx context.Context, b *model.Booking) error {
	return Update(ctx, tq.Tx, b)
}
