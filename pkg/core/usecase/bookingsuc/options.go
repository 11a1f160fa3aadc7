// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsuc

import (
	"errors"
	"time"

	"github.com/momeni/car-rental/pkg/core/notify"
	"github.com/momeni/car-rental/pkg/core/pricing"
)

// Option is a functional option for the bookings use case.
type Option func(uc *UseCase) error

// WithCalculator option configures the pricing calculator which is
// used for computing the booking costs. By default, the
// pricing.Default() calculator is used.
func WithCalculator(c *pricing.Calculator) Option {
	return func(uc *UseCase) error {
		if c == nil {
			return errors.New("calculator is nil")
		}
		if uc.calc != nil {
			return errors.New("calculator is already configured")
		}
		uc.calc = c
		return nil
	}
}

// WithNotifier option configures the sink of the in-app notifications
// which are sent after bookings are created or their statuses change.
// Notifications are discarded by default.
func WithNotifier(n notify.Notifier) Option {
	return func(uc *UseCase) error {
		if n == nil {
			return errors.New("notifier is nil")
		}
		if uc.notifier != nil {
			return errors.New("notifier is already configured")
		}
		uc.notifier = n
		return nil
	}
}

// WithClock option replaces the time.Now function. It is useful for
// validating the start dates and stamping the lifecycle timestamps
// deterministically in tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}

// WithNumberGenerator option replaces the NewBookingNumber function.
func WithNumberGenerator(gen func(time.Time) string) Option {
	return func(uc *UseCase) error {
		if gen == nil {
			return errors.New("number generator is nil")
		}
		if uc.newNumber != nil {
			return errors.New("number generator is already configured")
		}
		uc.newNumber = gen
		return nil
	}
}
