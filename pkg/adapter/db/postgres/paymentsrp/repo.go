// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package paymentsrp implements the repo.Payments interface over the
// payments table of a PostgreSQL database. The unique bid column keeps
// at most one payment per booking.
package paymentsrp

import (
	"context"

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

func (payments *Repo) Conn(c repo.Conn) repo.PaymentsConnQueryer {
	return connQueryer{Conn: c.(*postgres.Conn)}
}

func (cq connQueryer) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) ForBooking(ctx context.Context, bookingID uuid.UUID) (*model.Payment, error) {
	return ForBooking(ctx, cq.Conn, bookingID)
}

func (cq connQueryer) FindCompletedForBooking(ctx context.Context, bookingID uuid.UUID) (*model.Payment, error) {
	return FindCompletedForBooking(ctx, cq.Conn, bookingID)
}

func (cq connQueryer) ListByUser(ctx context.Context, userID string) ([]model.Payment, error) {
	return ListByUser(ctx, cq.Conn, userID)
}

type txQueryer struct {
	*postgres.Tx
}

func (payments *Repo) Tx(tx repo.Tx) repo.PaymentsTxQueryer {
	return txQueryer{Tx: tx.(*postgres.Tx)}
}

func (tq txQueryer) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) ForBooking(ctx context.Context, bookingID uuid.UUID) (*model.Payment, error) {
	return ForBooking(ctx, tq.Tx, bookingID)
}

func (tq txQueryer) FindCompletedForBooking(ctx context.Context, bookingID uuid.UUID) (*model.Payment, error) {
	return FindCompletedForBooking(ctx, tq.Tx, bookingID)
}

func (tq txQueryer) ListByUser(ctx context.Context, userID string) ([]model.Payment, error) {
	return ListByUser(ctx, tq.Tx, userID)
}

func (tq txQueryer) Insert(ctx context.Context, p *model.Payment) error {
	return Insert(ctx, tq.Tx, p)
}

func (tq txQueryer) Update(ctx context.Context, p *model.Payment) error {
	return Update(ctx, tq.Tx, p)
}
