// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsrs realizes the bookings resource, allowing the
// booking lifecycle REST APIs to be accepted and delegated to the
// bookings and payments use cases respectively.
package bookingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/usecase/bookingsuc"
	"github.com/momeni/car-rental/pkg/core/usecase/paymentsuc"
)

type resource struct {
	bookings *bookingsuc.UseCase
	payments *paymentsuc.UseCase
}

// Register instantiates a resource adapting the bookings and payments
// use case instances with the relevant REST APIs including:
//  1. POST /bookings to create a booking,
//  2. POST /bookings/quote to compute the cost of a rental request,
//  3. GET /bookings to list the caller bookings,
//  4. GET /bookings/:bid to get a booking with its associations,
//  5. GET /bookings/number/:number to find a booking by its number,
//  6. POST /bookings/:bid/cancel to cancel a booking,
//  7. POST /bookings/:bid/payment to pay for a booking.
//
// Administrative APIs are registered on the admin router group:
//  1. POST /admin/bookings/:bid/approve,
//  2. POST /admin/bookings/:bid/reject,
//  3. PATCH /admin/bookings/:bid/status.
func Register(
	r, admin *gin.RouterGroup,
	bookings *bookingsuc.UseCase,
	payments *paymentsuc.UseCase,
) {
	rs := &resource{bookings: bookings, payments: payments}
	r.POST("bookings", rs.Create)
	r.POST("bookings/quote", rs.Quote)
	r.GET("bookings", rs.List)
	r.GET("bookings/:bid", rs.Details)
	r.GET("bookings/number/:number", rs.ByNumber)
	r.POST("bookings/:bid/cancel", rs.Cancel)
	r.POST("bookings/:bid/payment", rs.Pay)

	admin.POST("bookings/:bid/approve", rs.Approve)
	admin.POST("bookings/:bid/reject", rs.Reject)
	admin.PATCH("bookings/:bid/status", rs.UpdateStatus)
}

func (rs *resource) Create(c *gin.Context) {
	req := dserRentalReq(c)
	if req == nil {
		return
	}
	b, err := rs.bookings.Create(c, authmw.Caller(c), req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusCreated, "Booking created successfully", b)
}

func (rs *resource) Quote(c *gin.Context) {
	req := dserRentalReq(c)
	if req == nil {
		return
	}
	cb, err := rs.bookings.CalculateCost(c, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Cost calculated", cb)
}

func (rs *resource) List(c *gin.Context) {
	bs, err := rs.bookings.ListMine(c, authmw.Caller(c))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Bookings retrieved", bs)
}

func (rs *resource) Details(c *gin.Context) {
	bid, ok := dserBookingID(c)
	if !ok {
		return
	}
	d, err := rs.bookings.Details(c, authmw.Caller(c), bid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Booking retrieved", d)
}

func (rs *resource) ByNumber(c *gin.Context) {
	req := &numberReq{}
	if !serdser.BindURI(c, req) {
		return
	}
	b, err := rs.bookings.GetByNumber(c, authmw.Caller(c), req.Number)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Booking retrieved", b)
}

func (rs *resource) Cancel(c *gin.Context) {
	bid, ok := dserBookingID(c)
	if !ok {
		return
	}
	req := &reasonReq{}
	if !serdser.BindOptional(c, req, binding.JSON) {
		return
	}
	b, err := rs.bookings.Cancel(c, authmw.Caller(c), bid, req.Reason)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Booking cancelled", b)
}

func (rs *resource) Pay(c *gin.Context) {
	bid, ok := dserBookingID(c)
	if !ok {
		return
	}
	req := dserPaymentReq(c)
	if req == nil {
		return
	}
	res, err := rs.payments.Settle(c, authmw.Caller(c), bid, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if !res.Success {
		c.JSON(http.StatusPaymentRequired, serdser.Response{
			Message: res.Message,
			Data:    res,
		})
		return
	}
	serdser.Ok(c, http.StatusOK, res.Message, res)
}

func (rs *resource) Approve(c *gin.Context) {
	bid, ok := dserBookingID(c)
	if !ok {
		return
	}
	b, err := rs.bookings.Approve(c, authmw.Caller(c), bid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Booking approved", b)
}

func (rs *resource) Reject(c *gin.Context) {
	bid, ok := dserBookingID(c)
	if !ok {
		return
	}
	req := &reasonReq{}
	if !serdser.BindOptional(c, req, binding.JSON) {
		return
	}
	b, err := rs.bookings.Reject(c, authmw.Caller(c), bid, req.Reason)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Booking rejected", b)
}

func (rs *resource) UpdateStatus(c *gin.Context) {
	bid, ok := dserBookingID(c)
	if !ok {
		return
	}
	req := &statusReq{}
	if !serdser.Bind(c, req, binding.JSON) {
		return
	}
	b, err := rs.bookings.UpdateStatus(
		c, authmw.Caller(c), bid, req.Status, req.Notes,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Booking status updated", b)
}
