// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authz_test

import (
	"net/http"
	"testing"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/authz"
	"github.com/stretchr/testify/assert"
)

func TestChecks(t *testing.T) {
	customer := model.Caller{UserID: "u1", Role: model.RoleCustomer}
	admin := model.Caller{UserID: "a1", Role: model.RoleSuperAdmin}
	anonymous := model.Caller{}

	assert.True(t, cerr.Is(authz.RequireIdentified(anonymous), http.StatusUnauthorized))
	assert.NoError(t, authz.RequireAdmin(admin))
	assert.True(t, cerr.Is(authz.RequireAdmin(customer), http.StatusForbidden))

	assert.NoError(t, authz.RequireAccess(customer, "u1"))
	assert.NoError(t, authz.RequireAccess(admin, "u1"))
	err := authz.RequireAccess(customer, "u2")
	assert.ErrorIs(t, err, model.ErrNotOwner)
	assert.True(t, cerr.Is(err, http.StatusForbidden))

	assert.NoError(t, authz.RequireRole(customer, model.RoleCustomer, model.RoleDriver))
	assert.ErrorIs(t, authz.RequireRole(customer, model.RoleDriver), model.ErrRoleNotAccepted)
}
