// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package simgw

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Option represents a functional option for the simulated Gateway.
type Option func(gw *Gateway) error

// WithSuccessRate sets the probability of approving a charge. It must
// be in the [0, 1] range.
func WithSuccessRate(r float64) Option {
	return func(gw *Gateway) error {
		if r < 0 || r > 1 {
			return fmt.Errorf("success rate %v is out of [0, 1]", r)
		}
		gw.successRate = r
		return nil
	}
}

// WithDelay sets the simulated processing delay. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(gw *Gateway) error {
		if d < 0 {
			return fmt.Errorf("negative delay: %v", d)
		}
		gw.delay = d
		return nil
	}
}

// WithSeed makes the approval decisions deterministic.
func WithSeed(seed int64) Option {
	return func(gw *Gateway) error {
		if gw.rnd != nil {
			return errors.New("random source is already configured")
		}
		gw.rnd = rand.New(rand.NewSource(seed))
		return nil
	}
}

// WithClock sets the function which timestamps the responses.
func WithClock(now func() time.Time) Option {
	return func(gw *Gateway) error {
		if now == nil {
			return errors.New("clock must be non-nil")
		}
		gw.now = now
		return nil
	}
}
