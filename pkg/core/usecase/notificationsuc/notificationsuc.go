// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package notificationsuc contains the notifications UseCase which
// persists the in-app notifications of users and lets them list their
// notifications and mark them as read.
//
// The UseCase implements the notify.Notifier interface, so it can be
// passed to other use cases as their notification sink.
package notificationsuc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/notify"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/authz"
)

// UseCase represents a notifications use case.
type UseCase struct {
	pool            repo.Pool
	notificationsrp repo.Notifications
}

var _ notify.Notifier = (*UseCase)(nil)

// New instantiates a notifications use case.
func New(p repo.Pool, n repo.Notifications) *UseCase {
	return &UseCase{pool: p, notificationsrp: n}
}

// Notify stores an unread notification for the userID user.
// It takes its own connection, so it must be called after the
// transaction of the caller use case is committed.
func (notifications *UseCase) Notify(
	ctx context.Context, userID, kind, title, message string,
) error {
	n := &model.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Kind:    kind,
	}
	return notifications.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		if err := notifications.notificationsrp.Conn(c).Insert(ctx, n); err != nil {
			return fmt.Errorf("inserting notification: %w", err)
		}
		return nil
	})
}

// ListMine returns the caller notifications, newest first.
func (notifications *UseCase) ListMine(
	ctx context.Context, caller model.Caller,
) (ns []model.Notification, err error) {
	if err = authz.RequireIdentified(caller); err != nil {
		return nil, err
	}
	err = notifications.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ns, err = notifications.notificationsrp.Conn(c).ListByUser(
			ctx, caller.UserID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	if ns == nil {
		ns = []model.Notification{}
	}
	return ns, nil
}

// MarkRead marks the id notification of the caller as read.
// Notifications of other users are reported as missing.
func (notifications *UseCase) MarkRead(
	ctx context.Context, caller model.Caller, id uuid.UUID,
) error {
	if err := authz.RequireIdentified(caller); err != nil {
		return err
	}
	return notifications.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return notifications.notificationsrp.Conn(c).MarkRead(
			ctx, caller.UserID, id,
		)
	})
}
