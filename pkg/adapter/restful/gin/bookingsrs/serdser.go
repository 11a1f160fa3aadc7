// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsrs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/shopspring/decimal"
)

type rawRentalReq struct {
	CarID             string `json:"carId" binding:"required,uuid"`
	StartDate         string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate           string `json:"endDate" binding:"required,datetime=2006-01-02"`
	PickupLocationID  string `json:"pickupLocationId" binding:"required,uuid"`
	ReturnLocationID  string `json:"returnLocationId" binding:"required,uuid"`
	NeedsDriver       bool   `json:"needsDriver"`
	WithInsurance     bool   `json:"withInsurance"`
	WithGPS           bool   `json:"withGps"`
	WithChildSeat     bool   `json:"withChildSeat"`
	AdditionalDrivers int    `json:"additionalDrivers" binding:"gte=0,lte=5"`
	ContactPhone      string `json:"contactPhone" binding:"omitempty,e164"`
	ContactEmail      string `json:"contactEmail" binding:"required,email"`
	Notes             string `json:"notes" binding:"max=1000"`
}

type bookingIDReq struct {
	BookingID string `uri:"bid" binding:"required,uuid"`
}

type numberReq struct {
	Number string `uri:"number" binding:"required,alphanum,max=32"`
}

type reasonReq struct {
	Reason string `json:"reason" binding:"max=500"`
}

type statusReq struct {
	Status model.BookingStatus `json:"status" binding:"required"`
	Notes  string              `json:"notes" binding:"max=1000"`
}

type rawPaymentReq struct {
	Method         model.PaymentMethod `json:"paymentMethod" binding:"required"`
	Amount         decimal.Decimal     `json:"amount"`
	CardNumber     string              `json:"cardNumber" binding:"max=23"`
	CardHolderName string              `json:"cardHolderName" binding:"max=100"`
	ExpiryMonth    int                 `json:"expiryMonth" binding:"omitempty,min=1,max=12"`
	ExpiryYear     int                 `json:"expiryYear" binding:"omitempty,min=2000"`
	CVV            string              `json:"cvv" binding:"omitempty,numeric,min=3,max=4"`
	Token          string              `json:"token" binding:"max=255"`
}

func dserBookingID(c *gin.Context) (uuid.UUID, bool) {
	req := &bookingIDReq{}
	if !serdser.BindURI(c, req) {
		return uuid.Nil, false
	}
	bid, err := uuid.Parse(req.BookingID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "bid", "Path param bid is not UUID.")
		serdser.Invalid(c, errs)
		return uuid.Nil, false
	}
	return bid, true
}

func dserRentalReq(c *gin.Context) *model.RentalRequest {
	req := &rawRentalReq{}
	if !serdser.Bind(c, req, binding.JSON) {
		return nil
	}
	val := &model.RentalRequest{
		AddOns: model.AddOns{
			NeedsDriver:       req.NeedsDriver,
			WithInsurance:     req.WithInsurance,
			WithGPS:           req.WithGPS,
			WithChildSeat:     req.WithChildSeat,
			AdditionalDrivers: req.AdditionalDrivers,
		},
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Notes:        req.Notes,
	}
	var errs map[string][]string
	var err error
	val.CarID, err = uuid.Parse(req.CarID)
	serdser.Assert(&errs, err == nil, "carId", "The carId is not UUID.")
	val.PickupLocationID, err = uuid.Parse(req.PickupLocationID)
	serdser.Assert(&errs, err == nil, "pickupLocationId", "The pickupLocationId is not UUID.")
	val.ReturnLocationID, err = uuid.Parse(req.ReturnLocationID)
	serdser.Assert(&errs, err == nil, "returnLocationId", "The returnLocationId is not UUID.")
	val.StartDate, err = time.ParseInLocation(time.DateOnly, req.StartDate, time.UTC)
	serdser.Assert(&errs, err == nil, "startDate", "The startDate is not a YYYY-MM-DD date.")
	val.EndDate, err = time.ParseInLocation(time.DateOnly, req.EndDate, time.UTC)
	serdser.Assert(&errs, err == nil, "endDate", "The endDate is not a YYYY-MM-DD date.")
	if err == nil && val.EndDate.Before(val.StartDate) {
		serdser.AddErr(&errs, "endDate", "The endDate must not be before startDate.")
	}
	if errs != nil {
		serdser.Invalid(c, errs)
		return nil
	}
	return val
}

func dserPaymentReq(c *gin.Context) *model.PaymentRequest {
	req := &rawPaymentReq{}
	if !serdser.Bind(c, req, binding.JSON) {
		return nil
	}
	var errs map[string][]string
	serdser.Assert(&errs, !req.Amount.IsNegative(), "amount", "The amount must not be negative.")
	if req.Method.IsCard() {
		serdser.Assert(&errs, req.CardNumber != "" || req.Token != "",
			"cardNumber", "Card payments require cardNumber or token.",
		)
	}
	if errs != nil {
		serdser.Invalid(c, errs)
		return nil
	}
	return &model.PaymentRequest{
		Method:         req.Method,
		Amount:         req.Amount,
		CardNumber:     req.CardNumber,
		CardHolderName: req.CardHolderName,
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
		CVV:            req.CVV,
		Token:          req.Token,
	}
}
