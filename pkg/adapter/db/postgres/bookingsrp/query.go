// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsrp

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

// NumberConstraint is the unique constraint of booking numbers.
const NumberConstraint = "bookings_booking_number_key"

type gBooking struct {
	BID       uuid.UUID `gorm:"primaryKey;type:uuid;column:bid"`
	UserID    string
	CID       uuid.UUID `gorm:"type:uuid;column:cid"`
	Number    string    `gorm:"column:booking_number"`
	StartDate time.Time `gorm:"type:date"`
	EndDate   time.Time `gorm:"type:date"`

	TotalDays             int
	PricePerDay           decimal.Decimal
	SubTotal              decimal.Decimal
	DriverCost            decimal.Decimal
	InsuranceCost         decimal.Decimal
	GPSCost               decimal.Decimal `gorm:"column:gps_cost"`
	ChildSeatCost         decimal.Decimal
	AdditionalDriversCost decimal.Decimal
	TaxAmount             decimal.Decimal
	DiscountAmount        decimal.Decimal
	DepositAmount         decimal.Decimal
	TotalAmount           decimal.Decimal

	PickupLocationID  uuid.UUID  `gorm:"type:uuid"`
	ReturnLocationID  uuid.UUID  `gorm:"type:uuid"`
	AssignedDriverID  *uuid.UUID `gorm:"type:uuid"`
	NeedsDriver       bool
	WithInsurance     bool
	WithGPS           bool `gorm:"column:with_gps"`
	WithChildSeat     bool
	AdditionalDrivers int

	Status             string
	Notes              string
	CancellationReason string
	CancelledAt        *time.Time
	ActualPickupTime   *time.Time
	ActualReturnTime   *time.Time
	ContactPhone       string
	ContactEmail       string
	CreatedAt          time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt          *time.Time `gorm:"autoUpdateTime:false"`
	DeletedAt          gorm.DeletedAt
}

func (gb *gBooking) TableName() string {
	return "bookings"
}

func fromModel(b *model.Booking) gBooking {
	return gBooking{
		BID:       b.ID,
		UserID:    b.UserID,
		CID:       b.CarID,
		Number:    b.Number,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,

		TotalDays:             b.TotalDays,
		PricePerDay:           b.PricePerDay,
		SubTotal:              b.SubTotal,
		DriverCost:            b.DriverCost,
		InsuranceCost:         b.InsuranceCost,
		GPSCost:               b.GPSCost,
		ChildSeatCost:         b.ChildSeatCost,
		AdditionalDriversCost: b.AdditionalDriversCost,
		TaxAmount:             b.TaxAmount,
		DiscountAmount:        b.DiscountAmount,
		DepositAmount:         b.DepositAmount,
		TotalAmount:           b.TotalAmount,

		PickupLocationID:  b.PickupLocationID,
		ReturnLocationID:  b.ReturnLocationID,
		AssignedDriverID:  b.AssignedDriverID,
		NeedsDriver:       b.NeedsDriver,
		WithInsurance:     b.WithInsurance,
		WithGPS:           b.WithGPS,
		WithChildSeat:     b.WithChildSeat,
		AdditionalDrivers: b.AdditionalDrivers,

		Status:             b.Status.String(),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		ActualPickupTime:   b.ActualPickupTime,
		ActualReturnTime:   b.ActualReturnTime,
		ContactPhone:       b.ContactPhone,
		ContactEmail:       b.ContactEmail,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (gb *gBooking) Model() (*model.Booking, error) {
	s, err := model.ParseBookingStatus(gb.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %v: %w", gb.BID, err)
	}
	return &model.Booking{
		ID:        gb.BID,
		UserID:    gb.UserID,
		CarID:     gb.CID,
		Number:    gb.Number,
		StartDate: model.DateOf(gb.StartDate),
		EndDate:   model.DateOf(gb.EndDate),
		CostBreakdown: model.CostBreakdown{
			TotalDays:             gb.TotalDays,
			PricePerDay:           gb.PricePerDay,
			SubTotal:              gb.SubTotal,
			DriverCost:            gb.DriverCost,
			InsuranceCost:         gb.InsuranceCost,
			GPSCost:               gb.GPSCost,
			ChildSeatCost:         gb.ChildSeatCost,
			AdditionalDriversCost: gb.AdditionalDriversCost,
			TaxAmount:             gb.TaxAmount,
			DiscountAmount:        gb.DiscountAmount,
			DepositAmount:         gb.DepositAmount,
			TotalAmount:           gb.TotalAmount,
		},
		PickupLocationID: gb.PickupLocationID,
		ReturnLocationID: gb.ReturnLocationID,
		AssignedDriverID: gb.AssignedDriverID,
		AddOns: model.AddOns{
			NeedsDriver:       gb.NeedsDriver,
			WithInsurance:     gb.WithInsurance,
			WithGPS:           gb.WithGPS,
			WithChildSeat:     gb.WithChildSeat,
			AdditionalDrivers: gb.AdditionalDrivers,
		},
		Status:             s,
		Notes:              gb.Notes,
		CancellationReason: gb.CancellationReason,
		CancelledAt:        gb.CancelledAt,
		ActualPickupTime:   gb.ActualPickupTime,
		ActualReturnTime:   gb.ActualReturnTime,
		ContactPhone:       gb.ContactPhone,
		ContactEmail:       gb.ContactEmail,
		CreatedAt:          gb.CreatedAt,
		UpdatedAt:          gb.UpdatedAt,
	}, nil
}

func notFound(format string, arg any) error {
	return cerr.NotFound(
		fmt.Errorf("%w: "+format, model.ErrBookingNotFound, arg),
	)
}

// LockCar takes a transaction-scoped advisory lock which is derived
// from the carID. It blocks while another transaction holds it.
func LockCar(ctx context.Context, tx *postgres.Tx, carID uuid.UUID) error {
	err := tx.GORM(ctx).Exec(
		"SELECT pg_advisory_xact_lock(hashtextextended(?, 0))",
		carID.String(),
	).Error
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func GetForUpdate(ctx context.Context, tx *postgres.Tx, id uuid.UUID) (*model.Booking, error) {
	return take(
		tx.GORM(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where(
			"bid = ?", id,
		), notFound("%v", id),
	)
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Booking, error) {
	return take(q.GORM(ctx).Where("bid = ?", id), notFound("%v", id))
}

func GetByNumber[Q postgres.Queryer](ctx context.Context, q Q, number string) (*model.Booking, error) {
	return take(
		q.GORM(ctx).Where("booking_number = ?", number),
		notFound("%q", number),
	)
}

func take(gdb *gorm.DB, errNotFound error) (*model.Booking, error) {
	var gb gBooking
	err := gdb.Take(&gb).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errNotFound
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gb.Model()
}

func Insert(ctx context.Context, tx *postgres.Tx, b *model.Booking) error {
	gb := fromModel(b)
	gb.BID = uuid.New()
	gb.UpdatedAt = nil
	if err := tx.GORM(ctx).Create(&gb).Error; err != nil {
		if postgres.ConstraintName(err) == NumberConstraint {
			return cerr.Conflict(fmt.Errorf(
				"%w: %q", model.ErrDuplicateBookingNumber, b.Number,
			))
		}
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	b.ID, b.UpdatedAt = gb.BID, nil
	return nil
}

func Update(ctx context.Context, tx *postgres.Tx, b *model.Booking) error {
	values := fromModel(b)
	var gbs []gBooking
	err := tx.GORM(ctx).Model(&gbs).Clauses(clause.Returning{}).Select(
		"status", "notes", "cancellation_reason", "cancelled_at",
		"actual_pickup_time", "actual_return_time", "assigned_driver_id",
		"updated_at",
	).Where(
		"bid = ?", b.ID,
	).Updates(values).Error
	if err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if n := len(gbs); n != 1 {
		return notFound("%v", b.ID)
	}
	return nil
}

func ExistsOverlap[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	carID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) (bool, error) {
	nonBlocking := model.NonBlockingBookingStatuses()
	statuses := make([]string, 0, len(nonBlocking))
	for _, s := range nonBlocking {
		statuses = append(statuses, s.String())
	}
	gdb := q.GORM(ctx).Model(&gBooking{}).Select("count(*) > 0").Where(
		"cid = ? AND status NOT IN ? AND start_date <= ? AND end_date >= ?",
		carID, statuses, model.DateOf(end), model.DateOf(start),
	)
	if excludeID != nil {
		gdb = gdb.Where("bid <> ?", *excludeID)
	}
	var exists bool
	if err := gdb.Scan(&exists).Error; err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return exists, nil
}

func ListByUser[Q postgres.Queryer](ctx context.Context, q Q, userID string) ([]model.Booking, error) {
	var gbs []gBooking
	err := q.GORM(ctx).Where(
		"user_id = ?", userID,
	).Order("created_at DESC").Find(&gbs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	bs := make([]model.Booking, 0, len(gbs))
	for i := range gbs {
		b, err := gbs[i].Model()
		if err != nil {
			return nil, err
		}
		bs = append(bs, *b)
	}
	return bs, nil
}
