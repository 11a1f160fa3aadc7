// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package notificationsrp implements the repo.Notifications interface
// for the in-app messages which are kept in the notifications table.
package notificationsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (notifications *Repo) Conn(c repo.Conn) repo.NotificationsConnQueryer {
	return connQueryer{Conn: c.(*postgres.Conn)}
}

func (cq connQueryer) Insert(ctx context.Context, n *model.Notification) error {
	return Insert(ctx, cq.Conn, n)
}

func (cq connQueryer) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	return ListByUser(ctx, cq.Conn, userID)
}

func (cq connQueryer) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	return MarkRead(ctx, cq.Conn, userID, id)
}

type txQueryer struct {
	*postgres.Tx
}

func (notifications *Repo) Tx(tx repo.Tx) repo.NotificationsTxQueryer {
	return txQueryer{Tx: tx.(*postgres.Tx)}
}

func (tq txQueryer) Insert(ctx context.Context, n *model.Notification) error {
	return Insert(ctx, tq.Tx, n)
}

func (tq txQueryer) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	return ListByUser(ctx, tq.Tx, userID)
}

func (tq txQueryer) MarkRead(ctx context.Context, userID string, id uuid.UUID) error {
	return MarkRead(ctx, tq.Tx, userID, id)
}
