// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package notificationsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"gorm.io/gorm"
)

type gNotification struct {
	NID       uuid.UUID `gorm:"primaryKey;type:uuid;column:nid"`
	UserID    string
	Title     string
	Message   string
	Kind      string
	IsRead    bool
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	DeletedAt gorm.DeletedAt
}

func (gn *gNotification) TableName() string {
	return "notifications"
}

func (gn *gNotification) Model() model.Notification {
	return model.Notification{
		ID:        gn.NID,
		UserID:    gn.UserID,
		Title:     gn.Title,
		Message:   gn.Message,
		Kind:      gn.Kind,
		IsRead:    gn.IsRead,
		CreatedAt: gn.CreatedAt,
	}
}

func Insert[Q postgres.Queryer](ctx context.Context, q Q, n *model.Notification) error {
	gn := gNotification{
		NID:       uuid.New(),
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Kind:      n.Kind,
		IsRead:    n.IsRead,
		CreatedAt: time.Now().UTC(),
	}
	if err := q.GORM(ctx).Create(&gn).Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	n.ID, n.CreatedAt = gn.NID, gn.CreatedAt
	return nil
}

func ListByUser[Q postgres.Queryer](ctx context.Context, q Q, userID string) ([]model.Notification, error) {
	var gns []gNotification
	err := q.GORM(ctx).Where(
		"user_id = ?", userID,
	).Order("created_at DESC").Find(&gns).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	ns := make([]model.Notification, 0, len(gns))
	for i := range gns {
		ns = append(ns, gns[i].Model())
	}
	return ns, nil
}

func MarkRead[Q postgres.Queryer](ctx context.Context, q Q, userID string, id uuid.UUID) error {
	res := q.GORM(ctx).Model(&gNotification{}).Where(
		"nid = ? AND user_id = ?", id, userID,
	).Update("is_read", true)
	if err := res.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if res.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("%w: %v", model.ErrNotificationNotFound, id),
		)
	}
	return nil
}
