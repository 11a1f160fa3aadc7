// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/momeni/car-rental/pkg/adapter/config/settings"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/notify"
	"github.com/momeni/car-rental/pkg/core/pricing"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/bookingsuc"
	"github.com/momeni/car-rental/pkg/core/usecase/carsuc"
	"github.com/momeni/car-rental/pkg/core/usecase/paymentsuc"
	"github.com/shopspring/decimal"
)

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Pricing  Pricing  // add-on and tax rates of the bookings use cases
	Payments Payments // payments use cases related settings
	Cars     Cars     // cars use cases related settings
}

// Pricing contains the rates of the pricing calculator.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Missing rates take the pricing package
// defaults.
type Pricing struct {
	TaxRate          *decimal.Decimal `yaml:"tax-rate"`
	Driver           *decimal.Decimal `yaml:"driver-per-day"`
	Insurance        *decimal.Decimal `yaml:"insurance-per-day"`
	GPS              *decimal.Decimal `yaml:"gps-per-day"`
	ChildSeat        *decimal.Decimal `yaml:"child-seat-per-day"`
	AdditionalDriver *decimal.Decimal `yaml:"additional-driver-per-day"`
}

// Payments contains the configuration settings for the payments
// use cases.
type Payments struct {
	// InvoiceBaseURL is the prefix of the generated invoice links.
	InvoiceBaseURL *string `yaml:"invoice-base-url"`
}

// Cars contains the configuration settings for the cars use cases.
type Cars struct {
	// TrackerRoles lists the roles which may report car locations.
	TrackerRoles []string `yaml:"tracker-roles"`
}

// ValidateAndNormalize validates all use cases settings.
func (u *Usecases) ValidateAndNormalize() error {
	if _, err := u.Pricing.NewCalculator(); err != nil {
		return fmt.Errorf("pricing: %w", err)
	}
	if s := u.Payments.InvoiceBaseURL; s != nil {
		if _, err := url.ParseRequestURI(*s); err != nil {
			return fmt.Errorf("invoice-base-url: %w", err)
		}
	}
	if _, err := u.Cars.trackers(); err != nil {
		return fmt.Errorf("cars: %w", err)
	}
	return nil
}

// NewCalculator instantiates a pricing calculator based on the `p`
// settings.
func (p Pricing) NewCalculator() (*pricing.Calculator, error) {
	opts := make([]pricing.Option, 0, 2)
	if p.TaxRate != nil {
		opts = append(opts, pricing.WithTaxRate(*p.TaxRate))
	}
	rates := pricing.DefaultAddOnRates()
	changed := false
	for _, r := range []struct {
		dst *decimal.Decimal
		src *decimal.Decimal
	}{
		{&rates.Driver, p.Driver},
		{&rates.Insurance, p.Insurance},
		{&rates.GPS, p.GPS},
		{&rates.ChildSeat, p.ChildSeat},
		{&rates.AdditionalDriver, p.AdditionalDriver},
	} {
		if r.src != nil {
			*r.dst = *r.src
			changed = true
		}
	}
	if changed {
		opts = append(opts, pricing.WithAddOnRates(rates))
	}
	return pricing.New(opts...)
}

func (c Cars) trackers() ([]model.Role, error) {
	roles := make([]model.Role, 0, len(c.TrackerRoles))
	for _, s := range c.TrackerRoles {
		r, err := model.ParseRole(s)
		if err != nil {
			return nil, fmt.Errorf("tracker role %q: %w", s, err)
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// NewBookingsUseCase instantiates a new bookings use case based on
// the settings in the c struct.
func (c *Config) NewBookingsUseCase(
	p repo.Pool,
	cars repo.Cars,
	locations repo.Locations,
	bookings repo.Bookings,
	payments repo.Payments,
	n notify.Notifier,
) (*bookingsuc.UseCase, error) {
	calc, err := c.Usecases.Pricing.NewCalculator()
	if err != nil {
		return nil, fmt.Errorf("creating pricing calculator: %w", err)
	}
	return bookingsuc.New(
		p, cars, locations, bookings, payments,
		bookingsuc.WithCalculator(calc),
		bookingsuc.WithNotifier(n),
	)
}

// NewPaymentsUseCase instantiates a new payments use case based on
// the settings in the c struct. The payment gateway and the mailer
// are created using the Gateway and Mailer settings.
func (c *Config) NewPaymentsUseCase(
	p repo.Pool,
	bookings repo.Bookings,
	payments repo.Payments,
	cars repo.Cars,
	locations repo.Locations,
	n notify.Notifier,
) (*paymentsuc.UseCase, error) {
	gw, err := c.Gateway.NewGateway()
	if err != nil {
		return nil, fmt.Errorf("creating payment gateway: %w", err)
	}
	m, err := c.Mailer.NewMailer()
	if err != nil {
		return nil, fmt.Errorf("creating mailer: %w", err)
	}
	opts := []paymentsuc.Option{
		paymentsuc.WithNotifier(n),
		paymentsuc.WithMailer(m),
	}
	if u := c.Usecases.Payments.InvoiceBaseURL; u != nil {
		opts = append(opts, paymentsuc.WithInvoiceBaseURL(*u))
	}
	return paymentsuc.New(
		p, bookings, payments, cars, locations, gw, opts...,
	)
}

// NewCarsUseCase instantiates a new cars use case based on the settings
// in the c struct.
func (c *Config) NewCarsUseCase(
	p repo.Pool, r repo.Cars,
) (*carsuc.UseCase, error) {
	roles, err := c.Usecases.Cars.trackers()
	if err != nil {
		return nil, err
	}
	opts := make([]carsuc.Option, 0, 1)
	if len(roles) > 0 {
		opts = append(opts, carsuc.WithTrackerRoles(roles...))
	}
	return carsuc.New(p, r, opts...)
}

var errUnknownKind = errors.New("unknown kind")

func verifyKind(kind **string, def string, kinds ...string) error {
	settings.Default(kind, def)
	for _, k := range kinds {
		if **kind == k {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", errUnknownKind, **kind)
}
