// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/model"
)

type NotificationsConnQueryer interface {
	NotificationsQueryer
}

type NotificationsTxQueryer interface {
	NotificationsQueryer
}

type NotificationsQueryer interface {
	// Insert stores n and fills its ID and CreatedAt fields.
	Insert(ctx context.Context, n *model.Notification) error

	// ListByUser returns notifications of the userID user, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)

	// MarkRead marks the id notification as read if it belongs to
	// the userID user, otherwise, a cerr.NotFound error is returned.
	MarkRead(ctx context.Context, userID string, id uuid.UUID) error
}

type Notifications interface {
	Conn(Conn) NotificationsConnQueryer
	Tx(Tx) NotificationsTxQueryer
}
