// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/internal/test/memrepo"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/carsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCars(t *testing.T) {
	ctx := context.Background()
	s := memrepo.New()
	car := s.AddCar(model.Car{Brand: "BMW", Status: model.CarStatusAvailable})
	uc, err := carsuc.New(s, s.Cars())
	require.NoError(t, err)

	admin := model.Caller{UserID: "a1", Role: model.RoleAdmin}
	driver := model.Caller{UserID: "d1", Role: model.RoleDriver}
	customer := model.Caller{UserID: "u1", Role: model.RoleCustomer}

	got, err := uc.Get(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, "BMW", got.Brand)
	_, err = uc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrCarNotFound)

	_, err = uc.SetStatus(ctx, driver, car.ID, model.CarStatusMaintenance)
	assert.Equal(t, http.StatusForbidden, cerr.StatusCode(err))
	_, err = uc.SetStatus(ctx, admin, car.ID, model.CarStatusInvalid)
	assert.Equal(t, http.StatusBadRequest, cerr.StatusCode(err))
	got, err = uc.SetStatus(ctx, admin, car.ID, model.CarStatusMaintenance)
	require.NoError(t, err)
	assert.Equal(t, model.CarStatusMaintenance, got.Status)
	assert.False(t, got.Bookable())

	dst := model.Coordinate{Lat: 40.4093, Lon: 49.8671}
	_, err = uc.Track(ctx, customer, car.ID, dst)
	assert.ErrorIs(t, err, model.ErrRoleNotAccepted)
	_, err = uc.Track(ctx, driver, car.ID, model.Coordinate{Lat: 91})
	assert.Equal(t, http.StatusBadRequest, cerr.StatusCode(err))
	got, err = uc.Track(ctx, driver, car.ID, dst)
	require.NoError(t, err)
	assert.Equal(t, dst, got.Coordinate)
}

func TestWithTrackerRoles(t *testing.T) {
	s := memrepo.New()
	car := s.AddCar(model.Car{Status: model.CarStatusAvailable})
	uc, err := carsuc.New(s, s.Cars(), carsuc.WithTrackerRoles(model.RoleSuperAdmin))
	require.NoError(t, err)
	driver := model.Caller{UserID: "d1", Role: model.RoleDriver}
	_, err = uc.Track(context.Background(), driver, car.ID, model.Coordinate{})
	assert.Equal(t, http.StatusForbidden, cerr.StatusCode(err))

	_, err = carsuc.New(s, s.Cars(), carsuc.WithTrackerRoles())
	assert.Error(t, err)
}
