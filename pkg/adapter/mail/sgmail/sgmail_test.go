// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package sgmail_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/car-rental/pkg/adapter/mail"
	"github.com/momeni/car-rental/pkg/adapter/mail/sgmail"
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
		ReturnLocation: &model.Location{Name: "Airport"},
	}
}

type sentMail struct {
	From struct {
		Email string `json:"email"`
	} `json:"from"`
	Subject          string `json:"subject"`
	Personalizations []struct {
		To []struct {
			Email string `json:"email"`
		} `json:"to"`
	} `json:"personalizations"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestSendBookingConfirmation(t *testing.T) {
	var got sentMail
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/mail/send", r.URL.Path)
			assert.Equal(t, "Bearer SG.key", r.Header.Get("Authorization"))
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.NoError(t, json.Unmarshal(body, &got))
			w.WriteHeader(http.StatusAccepted)
		},
	))
	defer srv.Close()

	m, err := sgmail.New("SG.key", srv.URL, mail.Sender{})
	require.NoError(t, err)
	err = m.SendBookingConfirmation(
		context.Background(), "u1@example.com", details(),
	)
	require.NoError(t, err)
	assert.Equal(t, "noreply@citycars.az", got.From.Email)
	assert.Equal(t, "Booking Confirmation - #BK20300601ABCDEF", got.Subject)
	require.Len(t, got.Personalizations, 1)
	require.Len(t, got.Personalizations[0].To, 1)
	assert.Equal(t, "u1@example.com", got.Personalizations[0].To[0].Email)
	require.Len(t, got.Content, 1)
	assert.Equal(t, "text/html", got.Content[0].Type)
	assert.Contains(t, got.Content[0].Value, "$177.00")
}

func TestRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"message":"bad from"}]}`))
		},
	))
	defer srv.Close()

	m, err := sgmail.New("SG.key", srv.URL, mail.DefaultSender)
	require.NoError(t, err)
	err = m.SendBookingConfirmation(
		context.Background(), "u1@example.com", details(),
	)
	assert.ErrorContains(t, err, "status 400")

	_, err = sgmail.New("", "", mail.DefaultSender)
	assert.Error(t, err)
}
