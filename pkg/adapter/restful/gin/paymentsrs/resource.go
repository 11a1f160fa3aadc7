// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package paymentsrs realizes the payments resource, allowing the
// payments querying REST APIs to be accepted and delegated to the
// payments use case. Payments are created by the bookings resource.
package paymentsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/usecase/paymentsuc"
)

type resource struct {
	payments *paymentsuc.UseCase
}

type paymentIDReq struct {
	PaymentID string `uri:"pid" binding:"required,uuid"`
}

// Register instantiates a resource adapting the payments use case
// instance with the relevant REST APIs including:
//  1. GET request to /payments in order to list the caller payments,
//  2. GET request to /payments/:pid in order to fetch a payment,
//  3. POST request to /payments/:pid/invoice in order to regenerate
//     the invoice of a completed payment.
func Register(r *gin.RouterGroup, payments *paymentsuc.UseCase) {
	rs := &resource{payments: payments}
	r.GET("payments", rs.List)
	r.GET("payments/:pid", rs.Get)
	r.POST("payments/:pid/invoice", rs.Invoice)
}

func (rs *resource) List(c *gin.Context) {
	ps, err := rs.payments.ListMine(c, authmw.Caller(c))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Payments retrieved", ps)
}

func dserPaymentID(c *gin.Context) (uuid.UUID, bool) {
	req := &paymentIDReq{}
	if !serdser.BindURI(c, req) {
		return uuid.Nil, false
	}
	pid, err := uuid.Parse(req.PaymentID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "pid", "Path param pid is not UUID.")
		serdser.Invalid(c, errs)
		return uuid.Nil, false
	}
	return pid, true
}

func (rs *resource) Get(c *gin.Context) {
	pid, ok := dserPaymentID(c)
	if !ok {
		return
	}
	p, err := rs.payments.Get(c, authmw.Caller(c), pid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Payment retrieved", p)
}

func (rs *resource) Invoice(c *gin.Context) {
	pid, ok := dserPaymentID(c)
	if !ok {
		return
	}
	p, err := rs.payments.GenerateInvoice(c, authmw.Caller(c), pid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Invoice generated successfully", p)
}
