// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the cars
// querying and manipulation REST APIs to be accepted and delegated to
// the cars and bookings use cases respectively.
package carsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/bookingsuc"
	"github.com/momeni/car-rental/pkg/core/usecase/carsuc"
)

type resource struct {
	cars     *carsuc.UseCase
	bookings *bookingsuc.UseCase
}

// Availability is the response of the car availability API.
type Availability struct {
	Available bool `json:"available"`
}

// Register instantiates a resource adapting the cars use case instance
// with the relevant REST APIs including:
//  1. GET request to /cars/:cid in order to fetch a car,
//  2. GET request to /cars/:cid/availability?start=&end= in order to
//     check if a car has no blocking booking in a date range,
//  3. PATCH request to /admin/cars/:cid in order to change the status
//     of a car (op=status) or track its location (op=track).
func Register(
	r, admin *gin.RouterGroup,
	cars *carsuc.UseCase,
	bookings *bookingsuc.UseCase,
) {
	rs := &resource{cars: cars, bookings: bookings}
	r.GET("cars/:cid", rs.Get)
	r.GET("cars/:cid/availability", rs.Availability)
	admin.PATCH("cars/:cid", rs.UpdateCar)
}

func (rs *resource) Get(c *gin.Context) {
	cid, ok := dserCarID(c)
	if !ok {
		return
	}
	car, err := rs.cars.Get(c, cid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Car retrieved", car)
}

func (rs *resource) Availability(c *gin.Context) {
	req := dserAvailabilityReq(c)
	if req == nil {
		return
	}
	overlap, err := rs.bookings.IsOverlapping(
		c, req.CarID, req.Start, req.End, nil,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Availability checked", Availability{
		Available: !overlap,
	})
}

func (rs *resource) UpdateCar(c *gin.Context) {
	req := dserUpdateCarReq(c)
	if req == nil {
		return
	}
	var car *model.Car
	var err error
	caller := authmw.Caller(c)
	switch req.Op {
	case "status":
		car, err = rs.cars.SetStatus(c, caller, req.CarID, req.Status)
	case "track":
		car, err = rs.cars.Track(c, caller, req.CarID, req.Dst)
	default:
		panic("unexpected op:" + req.Op)
	}
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Car updated", car)
}
