// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package locationsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"gorm.io/gorm"
)

type gLocation struct {
	LID        uuid.UUID `gorm:"primaryKey;type:uuid;column:lid"`
	Name       string
	Address    string
	City       string
	Coordinate model.Coordinate `gorm:"embedded"`
	CreatedAt  time.Time        `gorm:"autoCreateTime:false"`
	UpdatedAt  *time.Time       `gorm:"autoUpdateTime:false"`
	DeletedAt  gorm.DeletedAt
}

func (gl *gLocation) TableName() string {
	return "locations"
}

func (gl *gLocation) Model() *model.Location {
	return &model.Location{
		ID:         gl.LID,
		Name:       gl.Name,
		Address:    gl.Address,
		City:       gl.City,
		Coordinate: gl.Coordinate,
	}
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Location, error) {
	var gl gLocation
	err := q.GORM(ctx).Where("lid = ?", id).Take(&gl).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(
			fmt.Errorf("%w: %v", model.ErrLocationNotFound, id),
		)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gl.Model(), nil
}
