// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Option is a functional option for the pricing Calculator.
type Option func(c *Calculator) error

// WithAddOnRates option configures the per-day add-on rates.
func WithAddOnRates(rates AddOnRates) Option {
	return func(c *Calculator) error {
		if err := rates.validate(); err != nil {
			return err
		}
		if c.ratesSet {
			return errors.New("add-on rates are already configured")
		}
		c.rates, c.ratesSet = rates, true
		return nil
	}
}

// WithTaxRate option configures the tax rate as a fraction, e.g.,
// 0.18 for 18%. It must be in the [0, 1] range.
func WithTaxRate(rate decimal.Decimal) Option {
	return func(c *Calculator) error {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("tax rate (%s) is out of [0, 1]", rate)
		}
		if c.taxSet {
			return errors.New("tax rate is already configured")
		}
		c.taxRate, c.taxSet = rate, true
		return nil
	}
}
