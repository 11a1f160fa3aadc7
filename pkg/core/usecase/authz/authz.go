// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authz contains the capability checks which are performed at
// the beginning of each exposed use case operation. The checks depend
// on the model.Caller alone, so they are independent of the transport
// which has authenticated that caller.
package authz

import (
	"errors"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
)

// ErrAnonymous indicates that a use case is called without a caller
// identity.
var ErrAnonymous = errors.New("caller is not identified")

// RequireIdentified ensures that the caller has a user id.
func RequireIdentified(c model.Caller) error {
	if c.UserID == "" {
		return cerr.Authentication(ErrAnonymous)
	}
	return nil
}

// RequireRole ensures that the caller is identified and has one of
// the given roles.
func RequireRole(c model.Caller, roles ...model.Role) error {
	if err := RequireIdentified(c); err != nil {
		return err
	}
	if !c.HasRole(roles...) {
		return cerr.Authorization(model.ErrRoleNotAccepted)
	}
	return nil
}

// RequireAdmin ensures that the caller is an admin or super admin.
func RequireAdmin(c model.Caller) error {
	if err := RequireIdentified(c); err != nil {
		return err
	}
	if !c.IsAdmin() {
		return cerr.Authorization(model.ErrAdminRequired)
	}
	return nil
}

// RequireAccess ensures that the caller owns the resources of the
// ownerID user or is an admin.
func RequireAccess(c model.Caller, ownerID string) error {
	if err := RequireIdentified(c); err != nil {
		return err
	}
	if !c.CanAccess(ownerID) {
		return cerr.Authorization(
			fmt.Errorf("user %q: %w", c.UserID, model.ErrNotOwner),
		)
	}
	return nil
}
