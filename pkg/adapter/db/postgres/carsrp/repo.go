// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrp implements the repo.Cars interface for the car
// catalog which is kept in the cars table of a PostgreSQL database.
// Soft-deleted cars are invisible to all of its queries.
package carsrp

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

func (cars *Repo) Conn(c repo.Conn) repo.CarsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, carID uuid.UUID) (*model.Car, error) {
	return Get(ctx, cq.Conn, carID)
}

func (cq connQueryer) GetRateCard(ctx context.Context, carID uuid.UUID) (*model.RateCard, error) {
	return GetRateCard(ctx, cq.Conn, carID)
}

func (cq connQueryer) SetStatus(ctx context.Context, carID uuid.UUID, s model.CarStatus) (*model.Car, error) {
	return SetStatus(ctx, cq.Conn, carID, s)
}

func (cq connQueryer) Track(ctx context.Context, carID uuid.UUID, c model.Coordinate) (*model.Car, error) {
	return Track(ctx, cq.Conn, carID, c)
}

type txQueryer struct {
	*postgres.Tx
}

func (cars *Repo) Tx(tx repo.Tx) repo.CarsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Get(ctx context.Context, carID uuid.UUID) (*model.Car, error) {
	return Get(ctx, tq.Tx, carID)
}

func (tq txQueryer) GetRateCard(ctx context.Context, carID uuid.UUID) (*model.RateCard, error) {
	return GetRateCard(ctx, tq.Tx, carID)
}

func (tq txQueryer) SetStatus(ctx context.Context, carID uuid.UUID, s model.CarStatus) (*model.Car, error) {
	return SetStatus(ctx, tq.Tx, carID, s)
}

func (tq txQueryer) Track(ctx context.Context, carID uuid.UUID, c model.Coordinate) (*model.Car, error) {
	return Track(ctx, tq.Tx, carID, c)
}
