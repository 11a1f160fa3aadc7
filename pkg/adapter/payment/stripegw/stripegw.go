// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package stripegw implements the payment.Gateway interface using
// Stripe PaymentIntents. Each charge creates and confirms one intent
// with the payment method token of the request, so card numbers never
// reach this service. Card errors are reported as declined charges,
// while other Stripe errors are returned as errors.
package stripegw

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/momeni/car-rental/pkg/core/payment"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "usd"

// ErrMissingToken is the failure reason of charges which have no
// payment method token.
var ErrMissingToken = errors.New("a payment method token is required")

type intentsAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Gateway is a Stripe backed payment.Gateway.
type Gateway struct {
	intents  intentsAPI
	currency string
}

// New creates a Stripe Gateway using the apiKey secret key.
// The backends may be nil in order to use the Stripe API servers.
func New(apiKey, currency string, backends *stripe.Backends) (*Gateway, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("stripe: api key is required")
	}
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	sc := client.New(apiKey, backends)
	return &Gateway{intents: sc.PaymentIntents, currency: currency}, nil
}

// Charge creates a confirmed PaymentIntent for the req amount.
func (gw *Gateway) Charge(
	ctx context.Context, req payment.ChargeRequest,
) (*payment.ChargeResult, error) {
	if req.Payment == nil || req.Payment.Token == "" {
		return &payment.ChargeResult{
			FailureReason: ErrMissingToken.Error(),
		}, nil
	}
	cents := req.Amount.Shift(2).Round(0).IntPart()
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(cents),
		Currency:      stripe.String(gw.currency),
		PaymentMethod: stripe.String(req.Payment.Token),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String("Booking #" + req.BookingNumber),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.IdempotencyKey)
	params.AddMetadata("booking_id", req.BookingID.String())
	params.AddMetadata("booking_number", req.BookingNumber)
	params.AddMetadata("user_id", req.UserID)

	intent, err := gw.intents.New(params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.Type == stripe.ErrorTypeCard {
			return &payment.ChargeResult{
				FailureReason: se.Msg,
				RawResponse:   rawResponse(se.LastResponse),
			}, nil
		}
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	res := &payment.ChargeResult{
		Success:     intent.Status == stripe.PaymentIntentStatusSucceeded,
		ChargeID:    intent.ID,
		RawResponse: rawResponse(intent.LastResponse),
	}
	if !res.Success {
		res.FailureReason = fmt.Sprintf("payment intent is %s", intent.Status)
	}
	return res, nil
}

// rawResponse returns the response body which the Stripe client has
// kept for r. Stripe resources form cyclic graphs (e.g., an Error
// embeds a PaymentIntent), so they are never re-encoded here.
func rawResponse(r *stripe.APIResponse) string {
	if r == nil {
		return ""
	}
	return string(r.RawJSON)
}
