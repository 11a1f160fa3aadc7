// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/model"
)

type CarsConnQueryer interface {
	CarsQueryer
}

type CarsTxQueryer interface {
	CarsQueryer
}

// CarsQueryer is the car catalog. Missing cars are reported as a
// cerr.NotFound wrapping model.ErrCarNotFound.
type CarsQueryer interface {
	Get(ctx context.Context, carID uuid.UUID) (*model.Car, error)
	GetRateCard(ctx context.Context, carID uuid.UUID) (*model.RateCard, error)
	SetStatus(ctx context.Context, carID uuid.UUID, s model.CarStatus) (*model.Car, error)
	Track(ctx context.Context, carID uuid.UUID, c model.Coordinate) (*model.Car, error)
}

type Cars interface {
	Conn(Conn) CarsConnQueryer
	Tx(Tx) CarsTxQueryer
}
