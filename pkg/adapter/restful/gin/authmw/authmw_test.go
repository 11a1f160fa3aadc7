// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authmw_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = bytes.Repeat([]byte("s"), 32)

func TestShortKey(t *testing.T) {
	_, err := authmw.New([]byte("short"), nil)
	assert.ErrorIs(t, err, authmw.ErrShortKey)
}

func TestSignAndVerify(t *testing.T) {
	a, err := authmw.New(key, nil)
	require.NoError(t, err)
	caller := model.Caller{UserID: "u1", Role: model.RoleDriver}
	tok, err := a.Sign(caller, time.Minute)
	require.NoError(t, err)

	got, err := a.Verify("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, caller, got)

	_, err = a.Sign(model.Caller{UserID: "u1"}, time.Minute)
	assert.Error(t, err, "invalid roles may not be signed")
}

func TestVerifyFailures(t *testing.T) {
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	a, err := authmw.New(key, clock)
	require.NoError(t, err)
	other, err := authmw.New(bytes.Repeat([]byte("o"), 32), clock)
	require.NoError(t, err)

	caller := model.Caller{UserID: "u1", Role: model.RoleCustomer}
	expired, err := a.Sign(caller, -time.Minute)
	require.NoError(t, err)
	foreign, err := other.Sign(caller, time.Minute)
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, k any, c authmw.Claims) string {
		s, err := jwt.NewWithClaims(method, c).SignedString(k)
		require.NoError(t, err)
		return s
	}
	unknownRole := sign(jwt.SigningMethodHS256, key, authmw.Claims{
		Role:             "pilot",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	})
	noSubject := sign(jwt.SigningMethodHS256, key, authmw.Claims{
		Role: "customer",
	})
	hs512 := sign(jwt.SigningMethodHS512, key, authmw.Claims{
		Role:             "customer",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	})

	for name, header := range map[string]string{
		"empty":        "",
		"basic":        "Basic dTE6cGFzcw==",
		"no token":     "Bearer ",
		"garbage":      "Bearer abc.def.ghi",
		"expired":      "Bearer " + expired,
		"foreign key":  "Bearer " + foreign,
		"unknown role": "Bearer " + unknownRole,
		"no subject":   "Bearer " + noSubject,
		"hs512":        "Bearer " + hs512,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := a.Verify(header)
			assert.True(t, cerr.Is(err, http.StatusUnauthorized), err)
		})
	}
}
