// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package pricing computes the cost breakdown of a rental request.
// The Calculator is pure and deterministic: it performs no I/O and the
// same request and rate card always produce the same CostBreakdown.
// All amounts are fixed-point decimals.
package pricing

import (
	"fmt"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/shopspring/decimal"
)

// AddOnRates contains the flat per-day price of each add-on.
// AdditionalDriver is charged once per additional driver.
type AddOnRates struct {
	Driver           decimal.Decimal
	Insurance        decimal.Decimal
	GPS              decimal.Decimal
	ChildSeat        decimal.Decimal
	AdditionalDriver decimal.Decimal
}

// DefaultAddOnRates returns the business default add-on rates.
func DefaultAddOnRates() AddOnRates {
	return AddOnRates{
		Driver:           decimal.NewFromInt(50),
		Insurance:        decimal.NewFromInt(10),
		GPS:              decimal.NewFromInt(5),
		ChildSeat:        decimal.NewFromInt(3),
		AdditionalDriver: decimal.NewFromInt(10),
	}
}

// DefaultTaxRate is the tax rate which is applied on the sub-total
// plus add-ons (18%).
var DefaultTaxRate = decimal.RequireFromString("0.18")

// validate ensures that no rate is negative.
func (r AddOnRates) validate() error {
	for name, v := range map[string]decimal.Decimal{
		"driver":            r.Driver,
		"insurance":         r.Insurance,
		"gps":               r.GPS,
		"child seat":        r.ChildSeat,
		"additional driver": r.AdditionalDriver,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%s rate (%s) is negative", name, v)
		}
	}
	return nil
}

// centsPlaces is the number of fractional digits which are kept for
// the derived amounts (tax and discount).
const centsPlaces = 2

var hundred = decimal.NewFromInt(100)

// Calculator computes cost breakdowns using its configured rates.
// A Calculator is immutable and safe for concurrent use.
type Calculator struct {
	rates   AddOnRates
	taxRate decimal.Decimal

	ratesSet, taxSet bool
}

// New instantiates a Calculator. Add-on rates and the tax rate may be
// overridden by the WithAddOnRates and WithTaxRate options, otherwise
// DefaultAddOnRates and DefaultTaxRate are used.
func New(opts ...Option) (*Calculator, error) {
	c := &Calculator{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if !c.ratesSet {
		c.rates = DefaultAddOnRates()
	}
	if !c.taxSet {
		c.taxRate = DefaultTaxRate
	}
	return c, nil
}

// Default returns a Calculator with the default rates.
func Default() *Calculator {
	return &Calculator{
		rates:   DefaultAddOnRates(),
		taxRate: DefaultTaxRate,
	}
}

// Calculate computes the cost breakdown of the req rental request for
// a car with the rc rate card:
//
//	days     = (end - start) + 1
//	subTotal = pricePerDay * days
//	addOns   = sum(rate of each selected add-on) * days
//	tax      = (subTotal + addOns) * taxRate
//	discount = (subTotal + addOns) * discount% / 100
//	total    = subTotal + addOns + tax - discount
//
// Tax and discount are rounded to cents, so the total is exactly equal
// to the sum of the persisted components.
// The caller is responsible to validate the request beforehand.
func (c *Calculator) Calculate(
	req *model.RentalRequest, rc model.RateCard,
) model.CostBreakdown {
	days := req.TotalDays()
	d := decimal.NewFromInt(int64(days))
	cb := model.CostBreakdown{
		TotalDays:     days,
		PricePerDay:   rc.PricePerDay,
		SubTotal:      rc.PricePerDay.Mul(d),
		DriverCost:    perDay(req.NeedsDriver, c.rates.Driver, d),
		InsuranceCost: perDay(req.WithInsurance, c.rates.Insurance, d),
		GPSCost:       perDay(req.WithGPS, c.rates.GPS, d),
		ChildSeatCost: perDay(req.WithChildSeat, c.rates.ChildSeat, d),
		DepositAmount: rc.DepositAmount,
	}
	if n := req.AdditionalDrivers; n > 0 {
		cb.AdditionalDriversCost = c.rates.AdditionalDriver.Mul(
			decimal.NewFromInt(int64(n)),
		).Mul(d)
	}
	base := cb.SubTotal.Add(cb.AddOnTotal())
	cb.TaxAmount = base.Mul(c.taxRate).Round(centsPlaces)
	cb.DiscountAmount = base.Mul(rc.DiscountPercentage).Div(hundred).Round(
		centsPlaces,
	)
	cb.TotalAmount = base.Add(cb.TaxAmount).Sub(cb.DiscountAmount)
	return cb
}

func perDay(selected bool, rate, days decimal.Decimal) decimal.Decimal {
	if !selected {
		return decimal.Zero
	}
	return rate.Mul(days)
}
