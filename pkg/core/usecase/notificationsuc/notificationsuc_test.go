// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package notificationsuc_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/momeni/car-rental/internal/test/memrepo"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/notificationsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	s := memrepo.New()
	now := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	s.Now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	uc := notificationsuc.New(s, s.Notifications())
	u1 := model.Caller{UserID: "u1", Role: model.RoleCustomer}
	u2 := model.Caller{UserID: "u2", Role: model.RoleCustomer}

	require.NoError(t, uc.Notify(ctx, "u1", model.NotificationKindBooking, "first", "m1"))
	require.NoError(t, uc.Notify(ctx, "u1", model.NotificationKindPayment, "second", "m2"))

	ns, err := uc.ListMine(ctx, u1)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	assert.Equal(t, "second", ns[0].Title)
	assert.Equal(t, model.NotificationKindPayment, ns[0].Kind)
	assert.False(t, ns[0].IsRead)

	ns2, err := uc.ListMine(ctx, u2)
	require.NoError(t, err)
	assert.NotNil(t, ns2)
	assert.Empty(t, ns2)

	err = uc.MarkRead(ctx, u2, ns[0].ID)
	assert.Equal(t, http.StatusNotFound, cerr.StatusCode(err))
	require.NoError(t, uc.MarkRead(ctx, u1, ns[0].ID))
	ns, err = uc.ListMine(ctx, u1)
	require.NoError(t, err)
	assert.True(t, ns[0].IsRead)
	assert.False(t, ns[1].IsRead)

	_, err = uc.ListMine(ctx, model.Caller{})
	assert.Equal(t, http.StatusUnauthorized, cerr.StatusCode(err))
}
