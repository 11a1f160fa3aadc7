// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc

import (
	"errors"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/model"
)

// Option is a functional option for the cars use case.
type Option func(uc *UseCase) error

// WithTrackerRoles option configures a cars UseCase instance in order
// to accept the car tracking requests only from the given roles.
// By default, admins, super admins, and drivers may track cars.
// This option may be passed to the New() function.
func WithTrackerRoles(roles ...model.Role) Option {
	return func(uc *UseCase) error {
		if len(roles) == 0 {
			return errors.New("no tracker role is given")
		}
		for _, r := range roles {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("tracker role: %w", err)
			}
		}
		if len(uc.trackers) != 0 {
			return errors.New("tracker roles are already configured")
		}
		uc.trackers = roles
		return nil
	}
}
