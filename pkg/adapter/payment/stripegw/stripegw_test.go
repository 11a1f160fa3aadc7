// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stripegw_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/payment/stripegw"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"
)

func newGateway(t *testing.T, h http.HandlerFunc) *stripegw.Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	gw, err := stripegw.New("sk_test_123", "", &stripe.Backends{
		API: backend, Connect: backend, Uploads: backend,
	})
	require.NoError(t, err)
	return gw
}

// charge calls gw.Charge and fails the test if it does not return
// within a few seconds.
func charge(
	t *testing.T, gw *stripegw.Gateway, req payment.ChargeRequest,
) (*payment.ChargeResult, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	type outcome struct {
		res *payment.ChargeResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := gw.Charge(ctx, req)
		done <- outcome{res, err}
	}()
	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		t.Fatal("charge did not return in time")
		return nil, nil
	}
}

func chargeRequest(token string) payment.ChargeRequest {
	return payment.ChargeRequest{
		BookingID:     uuid.New(),
		BookingNumber: "BK20300601ABCDEF",
		UserID:        "u1",
		Amount:        decimal.RequireFromString("177.005"),
		Payment: &model.PaymentRequest{
			Method: model.PaymentMethodStripe,
			Token:  token,
		},
		IdempotencyKey: "TXN1",
	}
}

func TestSucceeded(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "TXN1", r.Header.Get("Idempotency-Key"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "17701", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "pm_card_visa", r.PostForm.Get("payment_method"))
		assert.Equal(t, "true", r.PostForm.Get("confirm"))
		assert.Equal(t, "BK20300601ABCDEF", r.PostForm.Get("metadata[booking_number]"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","object":"payment_intent","status":"succeeded","amount":17701,"currency":"usd"}`))
	})
	res, err := charge(t, gw, chargeRequest("pm_card_visa"))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "pi_1", res.ChargeID)
	assert.Contains(t, res.RawResponse, `"pi_1"`)
}

func TestCardDeclined(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","decline_code":"insufficient_funds","message":"Your card has insufficient funds."}}`))
	})
	res, err := charge(t, gw, chargeRequest("pm_card_visa"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Your card has insufficient funds.", res.FailureReason)
	assert.Contains(t, res.RawResponse, "insufficient_funds")
}

func TestCardDeclinedWithIntent(t *testing.T) {
	body := `{"error":{"type":"card_error","code":"card_declined",` +
		`"message":"Your card was declined.","payment_intent":{"id":"pi_3",` +
		`"object":"payment_intent","status":"requires_payment_method",` +
		`"last_payment_error":{"type":"card_error","code":"card_declined"},` +
		`"payment_method":{"id":"pm_1","object":"payment_method",` +
		`"customer":{"id":"cus_1","object":"customer"}}}}}`
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(body))
	})
	res, err := charge(t, gw, chargeRequest("pm_card_visa"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Your card was declined.", res.FailureReason)
	assert.JSONEq(t, body, res.RawResponse)
}

func TestRequiresAction(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_2","object":"payment_intent","status":"requires_action"}`))
	})
	res, err := charge(t, gw, chargeRequest("pm_card_3ds"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "payment intent is requires_action", res.FailureReason)
}

func TestServerError(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"boom"}}`))
	})
	_, err := charge(t, gw, chargeRequest("pm_card_visa"))
	assert.Error(t, err)
}

func TestMissingToken(t *testing.T) {
	gw := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request is expected")
	})
	res, err := charge(t, gw, chargeRequest(""))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, stripegw.ErrMissingToken.Error(), res.FailureReason)

	_, err = stripegw.New(" ", "usd", nil)
	assert.Error(t, err)
}
