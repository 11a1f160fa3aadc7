// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gCar struct {
	CID                uuid.UUID `gorm:"primaryKey;type:uuid;column:cid"`
	Brand              string
	CarModel           string `gorm:"column:model"`
	Year               int
	LicensePlate       string
	Status             string
	PricePerDay        decimal.Decimal
	DepositAmount      decimal.Decimal
	DiscountPercentage decimal.Decimal
	Coordinate         model.Coordinate `gorm:"embedded"`
	CreatedAt          time.Time        `gorm:"autoCreateTime:false"`
	UpdatedAt          *time.Time       `gorm:"autoUpdateTime:false"`
	DeletedAt          gorm.DeletedAt
}

func (gc *gCar) TableName() string {
	return "cars"
}

func (gc *gCar) Model() (*model.Car, error) {
	s, err := model.ParseCarStatus(gc.Status)
	if err != nil {
		return nil, fmt.Errorf("car %v: %w", gc.CID, err)
	}
	return &model.Car{
		ID:           gc.CID,
		Brand:        gc.Brand,
		Model:        gc.CarModel,
		Year:         gc.Year,
		LicensePlate: gc.LicensePlate,
		Status:       s,
		RateCard: model.RateCard{
			PricePerDay:        gc.PricePerDay,
			DepositAmount:      gc.DepositAmount,
			DiscountPercentage: gc.DiscountPercentage,
		},
		Coordinate: gc.Coordinate,
	}, nil
}

func notFound(carID uuid.UUID) error {
	return cerr.NotFound(fmt.Errorf("%w: %v", model.ErrCarNotFound, carID))
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID) (*model.Car, error) {
	var gc gCar
	err := q.GORM(ctx).Where("cid = ?", carID).Take(&gc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, notFound(carID)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gc.Model()
}

func GetRateCard[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID) (*model.RateCard, error) {
	var gc gCar
	err := q.GORM(ctx).Select(
		"price_per_day", "deposit_amount", "discount_percentage",
	).Where("cid = ?", carID).Take(&gc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, notFound(carID)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return &model.RateCard{
		PricePerDay:        gc.PricePerDay,
		DepositAmount:      gc.DepositAmount,
		DiscountPercentage: gc.DiscountPercentage,
	}, nil
}

func SetStatus[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID, s model.CarStatus) (*model.Car, error) {
	now := time.Now().UTC()
	return update(ctx, q, carID, gCar{
		Status:    s.String(),
		UpdatedAt: &now,
	}, "status", "updated_at")
}

func Track[Q postgres.Queryer](ctx context.Context, q Q, carID uuid.UUID, c model.Coordinate) (*model.Car, error) {
	now := time.Now().UTC()
	return update(ctx, q, carID, gCar{
		Coordinate: c,
		UpdatedAt:  &now,
	}, "lat", "lon", "updated_at")
}

func update[Q postgres.Queryer](
	ctx context.Context, q Q, carID uuid.UUID, values gCar, cols ...string,
) (*model.Car, error) {
	var gc []gCar
	err := q.GORM(ctx).Model(&gc).Clauses(clause.Returning{}).Select(
		cols,
	).Where(
		"cid = ?", carID,
	).Updates(values).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if n := len(gc); n != 1 {
		return nil, notFound(carID)
	}
	return gc[0].Model()
}
