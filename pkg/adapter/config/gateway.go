// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"time"

	"github.com/momeni/car-rental/pkg/adapter/config/settings"
	"github.com/momeni/car-rental/pkg/adapter/payment/simgw"
	"github.com/momeni/car-rental/pkg/adapter/payment/stripegw"
	"github.com/momeni/car-rental/pkg/core/payment"
)

// Gateway contains the payment gateway settings. The Kind chooses
// between the simulated (default) and stripe gateways.
type Gateway struct {
	Kind      *string
	Simulated SimulatedGateway
	Stripe    StripeGateway
}

// SimulatedGateway contains the simulated gateway settings.
type SimulatedGateway struct {
	SuccessRate *float64           `yaml:"success-rate"`
	Delay       *settings.Duration `yaml:"delay"`
}

// StripeGateway contains the Stripe gateway settings. The secret API
// key is kept in a separate file.
type StripeGateway struct {
	KeyFile  string `yaml:"key-file"`
	Currency string `yaml:"currency,omitempty"`
}

// ValidateAndNormalize validates the gateway settings.
func (g *Gateway) ValidateAndNormalize() error {
	if err := verifyKind(&g.Kind, "simulated", "simulated", "stripe"); err != nil {
		return err
	}
	rate := settings.Between(0.0, 1.0)
	if err := rate.Clamp(g.Simulated.SuccessRate); err != nil {
		return fmt.Errorf("success rate %v is not in [0, 1]: %w",
			err.Value, err,
		)
	}
	delay := settings.AtLeast[settings.Duration](0)
	if err := delay.Clamp(g.Simulated.Delay); err != nil {
		return fmt.Errorf("delay %v is negative: %w",
			time.Duration(err.Value), err,
		)
	}
	if *g.Kind == "stripe" && g.Stripe.KeyFile == "" {
		return fmt.Errorf("stripe.key-file is required")
	}
	return nil
}

// NewGateway instantiates the configured payment gateway.
func (g Gateway) NewGateway() (payment.Gateway, error) {
	switch *g.Kind {
	case "stripe":
		key, err := readSecret(g.Stripe.KeyFile)
		if err != nil {
			return nil, err
		}
		return stripegw.New(key, g.Stripe.Currency, nil)
	default:
		opts := make([]simgw.Option, 0, 2)
		if r := g.Simulated.SuccessRate; r != nil {
			opts = append(opts, simgw.WithSuccessRate(*r))
		}
		if d := g.Simulated.Delay; d != nil {
			opts = append(opts, simgw.WithDelay(time.Duration(*d)))
		}
		return simgw.New(opts...)
	}
}
