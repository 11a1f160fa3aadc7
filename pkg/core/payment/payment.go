// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package payment exports the payment gateway interface which is
// consumed by the paymentsuc use case. Implementations (a simulated
// gateway and a Stripe gateway) are kept in pkg/adapter/payment.
package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/shopspring/decimal"
)

// ChargeRequest describes one charge attempt.
// IdempotencyKey is unique per attempt, so a gateway may deduplicate
// retried network calls.
type ChargeRequest struct {
	BookingID      uuid.UUID
	BookingNumber  string
	UserID         string
	Amount         decimal.Decimal
	Payment        *model.PaymentRequest
	IdempotencyKey string
}

// ChargeResult is the business outcome of a charge attempt.
// A declined charge has Success=false and a FailureReason.
// RawResponse keeps the gateway response for auditing.
type ChargeResult struct {
	Success       bool
	ChargeID      string
	FailureReason string
	RawResponse   string
}

// Gateway charges payments. An error return value indicates that the
// gateway could not be reached or its response could not be processed
// (an infrastructure failure) and must not be confused with a declined
// charge.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}
