// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"slices"
)

// Role specifies the role of an authenticated caller. Roles are
// asserted by the external identity provider and are only checked
// (never managed) by this project.
type Role int

// Valid values for the Role enum.
const (
	RoleInvalid Role = iota // zero value is invalid

	RoleCustomer
	RoleDriver
	RoleAdmin
	RoleSuperAdmin
)

var roleNames = [...]string{
	RoleCustomer:   "customer",
	RoleDriver:     "driver",
	RoleAdmin:      "admin",
	RoleSuperAdmin: "super-admin",
}

// ErrUnknownRole indicates that a given string may not be parsed
// as a known role.
var ErrUnknownRole = errors.New("unknown role")

// RoleError indicates an invalid role integer.
type RoleError int

// Error implements the error interface.
func (e RoleError) Error() string {
	return fmt.Sprintf("invalid role: %d", e)
}

// Validate returns nil if Role value is valid.
func (r Role) Validate() error {
	if r <= RoleInvalid || int(r) >= len(roleNames) {
		return RoleError(r)
	}
	return nil
}

// String converts the Role enum to a string.
// Invalid role causes a panic.
func (r Role) String() string {
	if err := r.Validate(); err != nil {
		panic(err)
	}
	return roleNames[r]
}

// ParseRole parses the given string and returns a Role.
// For invalid strings, RoleInvalid and ErrUnknownRole will be returned.
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if i != 0 && name == s {
			return Role(i), nil
		}
	}
	return RoleInvalid, ErrUnknownRole
}

// Caller identifies the authenticated user on whose behalf a use case
// is executed. The UserID is the subject which is asserted by the
// identity provider.
type Caller struct {
	UserID string
	Role   Role
}

// IsAdmin reports if the caller has an administrative role.
func (c Caller) IsAdmin() bool {
	return c.HasRole(RoleAdmin, RoleSuperAdmin)
}

// HasRole reports if the caller role is one of the given roles.
func (c Caller) HasRole(roles ...Role) bool {
	return slices.Contains(roles, c.Role)
}

// Owns reports if the caller is the given user.
func (c Caller) Owns(userID string) bool {
	return c.UserID != "" && c.UserID == userID
}

// CanAccess reports if the caller may read or modify a resource which
// belongs to the userID user, i.e., caller is its owner or an admin.
func (c Caller) CanAccess(userID string) bool {
	return c.Owns(userID) || c.IsAdmin()
}
