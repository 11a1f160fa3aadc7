// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package simgw_test

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/car-rental/pkg/adapter/payment/simgw"
	"github.com/momeni/car-rental/pkg/core/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var req = payment.ChargeRequest{
	BookingNumber:  "BK20300601ABCDEF",
	Amount:         decimal.RequireFromString("177"),
	IdempotencyKey: "TXN1",
}

func TestApproved(t *testing.T) {
	gw, err := simgw.New(simgw.WithSuccessRate(1), simgw.WithDelay(0))
	require.NoError(t, err)
	res, err := gw.Charge(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.FailureReason)
	assert.Regexp(t, `^sim_[0-9A-Z]{26}$`, res.ChargeID)

	var raw map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.RawResponse), &raw))
	assert.Equal(t, "success", raw["status"])
	assert.Equal(t, res.ChargeID, raw["transaction_id"])
}

func TestDeclined(t *testing.T) {
	gw, err := simgw.New(
		simgw.WithSuccessRate(0), simgw.WithDelay(0), simgw.WithSeed(7),
		simgw.WithClock(func() time.Time {
			return time.Date(2030, 6, 1, 9, 30, 15, 0, time.UTC)
		}),
	)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		res, err := gw.Charge(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Contains(t, simgw.FailureReasons, res.FailureReason)
		assert.Contains(t, res.RawResponse, `"timestamp":"2030-06-01T09:30:15Z"`)
	}
}

func TestCancelledWhileWaiting(t *testing.T) {
	gw, err := simgw.New(simgw.WithDelay(time.Hour))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gw.Charge(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvalidOptions(t *testing.T) {
	_, err := simgw.New(simgw.WithSuccessRate(1.5))
	assert.Error(t, err)
	_, err = simgw.New(simgw.WithDelay(-time.Second))
	assert.Error(t, err)
	_, err = simgw.New(simgw.WithSeed(1), simgw.WithSeed(2))
	assert.Error(t, err)
}
