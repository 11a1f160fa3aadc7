// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsuc contains the cars UseCase which supports the
// car catalog use cases. Currently, three uses cases are supported:
//  1. Fetching a car with its rate card,
//  2. Changing a car availability status by admins,
//  3. Tracking a car location by admins or drivers.
package carsuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/authz"
)

// UseCase represents a cars use case. It holds a database connection
// pool and the cars repository instance (to be guided with the DB
// pool).
type UseCase struct {
	pool   repo.Pool
	carsrp repo.Cars

	trackers []model.Role
}

// New instantiates a cars use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(p repo.Pool, c repo.Cars, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, carsrp: c}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if len(uc.trackers) == 0 {
		uc.trackers = []model.Role{
			model.RoleAdmin, model.RoleSuperAdmin, model.RoleDriver,
		}
	}
	return uc, nil
}

// Get use case returns the cid car including its rate card.
func (cars *UseCase) Get(ctx context.Context, cid uuid.UUID) (car *model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		car, err = cars.carsrp.Conn(c).Get(ctx, cid)
		return err
	})
	if err != nil {
		car = nil
	}
	return
}

// SetStatus use case changes the availability status of the cid car.
// Only admins may call it. Cars in maintenance or out of service are
// not bookable, but their existing bookings are kept intact.
func (cars *UseCase) SetStatus(
	ctx context.Context, caller model.Caller, cid uuid.UUID, s model.CarStatus,
) (car *model.Car, err error) {
	if err = authz.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err = s.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		car, err = cars.carsrp.Conn(c).SetStatus(ctx, cid, s)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "car status changed",
		log.Stringer("car", cid),
		log.Stringer("status", s),
		slog.String("by", caller.UserID),
	)
	return car, nil
}

// Track use case records the destination coordinate as the latest
// geographical location of the cid car. Updated car model and
// possible errors are returned.
func (cars *UseCase) Track(
	ctx context.Context,
	caller model.Caller,
	cid uuid.UUID,
	destination model.Coordinate,
) (car *model.Car, err error) {
	if err = authz.RequireRole(caller, cars.trackers...); err != nil {
		return nil, err
	}
	if err = destination.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		car, err = cars.carsrp.Conn(c).Track(ctx, cid, destination)
		return err
	})
	if err != nil {
		car = nil
	}
	return
}
