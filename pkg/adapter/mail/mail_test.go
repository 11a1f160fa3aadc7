// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package mail_test

import (
	"testing"
	"time"

	"github.com/momeni/car-rental/pkg/adapter/mail"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details() *model.BookingDetails {
	b := &model.Booking{
		Number:    "BK20300601ABCDEF",
		StartDate: time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2030, 6, 5, 0, 0, 0, 0, time.UTC),
	}
	b.TotalAmount = decimal.RequireFromString("177")
	return &model.BookingDetails{
		Booking:        b,
		Car:            &model.Car{Brand: "Toyota", Model: "Corolla"},
		PickupLocation: &model.Location{Name: "Airport"},
		ReturnLocation: &model.Location{Name: "Old <City>"},
	}
}

func TestBookingConfirmation(t *testing.T) {
	m, err := mail.BookingConfirmation("u1@example.com", details())
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", m.To)
	assert.Equal(t, "Booking Confirmation - #BK20300601ABCDEF", m.Subject)
	assert.Contains(t, m.HTML, "<strong>Car:</strong> Toyota Corolla")
	assert.Contains(t, m.HTML, "03 Jun 2030")
	assert.Contains(t, m.HTML, "05 Jun 2030")
	assert.Contains(t, m.HTML, "$177.00")
	assert.Contains(t, m.HTML, "Old &lt;City&gt;")
}

func TestIncompleteDetails(t *testing.T) {
	d := details()
	d.Car = nil
	_, err := mail.BookingConfirmation("u1@example.com", d)
	assert.Error(t, err)
	_, err = mail.BookingConfirmation(" ", details())
	assert.Error(t, err)
}
