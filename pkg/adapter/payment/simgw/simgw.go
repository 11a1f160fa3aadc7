// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package simgw provides a simulated payment gateway which approves
// a configurable share of charges after a short delay and declines
// the rest with a randomly chosen reason. It implements the
// payment.Gateway interface and is suitable for development and
// demonstration deployments.
package simgw

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/car-rental/pkg/core/payment"
	"github.com/oklog/ulid/v2"
)

// Default simulation parameters.
const (
	DefaultSuccessRate = 0.95
	DefaultDelay       = time.Second
)

// FailureReasons lists the reasons which are reported for declined
// charges.
var FailureReasons = []string{
	"Insufficient funds",
	"Card declined",
	"Invalid card number",
	"Expired card",
}

// Gateway is a simulated payment.Gateway.
type Gateway struct {
	successRate float64
	delay       time.Duration
	now         func() time.Time

	mu  sync.Mutex // protects rnd
	rnd *rand.Rand
}

// New creates a simulated Gateway. Without options, 95 percent of
// charges succeed after a one second delay.
func New(opts ...Option) (*Gateway, error) {
	gw := &Gateway{successRate: -1, delay: -1}
	for _, opt := range opts {
		if err := opt(gw); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if gw.successRate < 0 {
		gw.successRate = DefaultSuccessRate
	}
	if gw.delay < 0 {
		gw.delay = DefaultDelay
	}
	if gw.now == nil {
		gw.now = time.Now
	}
	if gw.rnd == nil {
		gw.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return gw, nil
}

type response struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
	Timestamp     string `json:"timestamp"`
}

// Charge waits for the configured delay (or until ctx is done) and
// then approves or declines the charge randomly. The only errors are
// caused by ctx cancellation.
func (gw *Gateway) Charge(
	ctx context.Context, req payment.ChargeRequest,
) (*payment.ChargeResult, error) {
	if gw.delay > 0 {
		t := time.NewTimer(gw.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("charging %s: %w", req.BookingNumber, ctx.Err())
		case <-t.C:
		}
	}
	gw.mu.Lock()
	success := gw.rnd.Float64() < gw.successRate
	reason := FailureReasons[gw.rnd.Intn(len(FailureReasons))]
	gw.mu.Unlock()

	now := gw.now().UTC()
	resp := response{Timestamp: now.Format(time.RFC3339Nano)}
	res := &payment.ChargeResult{Success: success}
	if success {
		res.ChargeID = "sim_" + ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
		resp.Status, resp.TransactionID = "success", res.ChargeID
	} else {
		res.FailureReason = reason
		resp.Status, resp.Error = "failed", reason
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshaling response: %w", err)
	}
	res.RawResponse = string(raw)
	return res, nil
}
