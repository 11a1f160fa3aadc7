// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsuc contains the bookings UseCase which supports the
// booking lifecycle use cases:
//  1. Computing the cost of a rental request,
//  2. Checking the availability of a car for a date range,
//  3. Creating a pending booking,
//  4. Approving, rejecting, cancelling, or updating the status of a
//     booking, as permitted by its state machine,
//  5. Querying the bookings of a user.
//
// Booking creation checks the availability and inserts the booking in
// one transaction after taking a per-car lock, so two concurrent
// requests for overlapping dates of the same car may not both succeed.
package bookingsuc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/notify"
	"github.com/momeni/car-rental/pkg/core/pricing"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/authz"
)

// UseCase represents a bookings use case. It holds a database
// connection pool, the repositories which are guided with that pool,
// the pricing calculator, and the notification sink.
type UseCase struct {
	pool        repo.Pool
	carsrp      repo.Cars
	locationsrp repo.Locations
	bookingsrp  repo.Bookings
	paymentsrp  repo.Payments

	calc      *pricing.Calculator
	notifier  notify.Notifier
	now       func() time.Time
	newNumber func(time.Time) string
}

// New instantiates a bookings use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool,
	cars repo.Cars,
	locations repo.Locations,
	bookings repo.Bookings,
	payments repo.Payments,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool:        p,
		carsrp:      cars,
		locationsrp: locations,
		bookingsrp:  bookings,
		paymentsrp:  payments,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.calc == nil {
		uc.calc = pricing.Default()
	}
	if uc.notifier == nil {
		uc.notifier = notify.Discard
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newNumber == nil {
		uc.newNumber = NewBookingNumber
	}
	return uc, nil
}

// NewBookingNumber returns a human-readable booking number like
// BK20300601A1B2C3, consisting of the BK prefix, the creation date,
// and six random hexadecimal digits. Uniqueness is enforced by the
// bookings repository.
func NewBookingNumber(now time.Time) string {
	id := uuid.New()
	suffix := strings.ToUpper(fmt.Sprintf("%x", id[:3]))
	return "BK" + now.UTC().Format("20060102") + suffix
}

// CalculateCost computes the cost breakdown of the req rental request
// without creating any booking.
func (bookings *UseCase) CalculateCost(
	ctx context.Context, req *model.RentalRequest,
) (cb *model.CostBreakdown, err error) {
	if err = req.Validate(bookings.now()); err != nil {
		return nil, cerr.BadRequest(fmt.Errorf("rental request: %w", err))
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		rc, err := bookings.carsrp.Conn(c).GetRateCard(ctx, req.CarID)
		if err != nil {
			return fmt.Errorf("getting rate card of %v: %w", req.CarID, err)
		}
		cost := bookings.calc.Calculate(req, *rc)
		cb = &cost
		return nil
	})
	if err != nil {
		cb = nil
	}
	return
}

// IsOverlapping reports if a blocking booking of the carID car shares
// at least one calendar day with the [start, end] range. The excludeID
// booking is ignored if it is not nil, so a booking which is being
// modified does not conflict with itself.
func (bookings *UseCase) IsOverlapping(
	ctx context.Context,
	carID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) (overlap bool, err error) {
	if model.DateOf(end).Before(model.DateOf(start)) {
		return false, cerr.BadRequest(
			fmt.Errorf("end date %s is before start date %s",
				end.Format(time.DateOnly), start.Format(time.DateOnly),
			),
		)
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		overlap, err = bookings.bookingsrp.Conn(c).ExistsOverlap(
			ctx, carID, start, end, excludeID,
		)
		return err
	})
	return
}

// Create validates the req rental request and creates a pending
// booking for the caller. In one transaction, it ensures that the car
// and locations exist, locks the car bookings, checks that no blocking
// booking overlaps with the requested dates, computes the cost, and
// inserts the booking. Overlaps are reported as cerr.Conflict errors.
// A "Booking Created" notification is sent after the commit.
func (bookings *UseCase) Create(
	ctx context.Context, caller model.Caller, req *model.RentalRequest,
) (b *model.Booking, err error) {
	if err = authz.RequireIdentified(caller); err != nil {
		return nil, err
	}
	if err = req.Validate(bookings.now()); err != nil {
		return nil, cerr.BadRequest(fmt.Errorf("rental request: %w", err))
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			car, err := bookings.carsrp.Tx(tx).Get(ctx, req.CarID)
			if err != nil {
				return fmt.Errorf("getting car %v: %w", req.CarID, err)
			}
			if !car.Bookable() {
				return cerr.Conflict(fmt.Errorf(
					"car status is %s: %w", car.Status, model.ErrCarUnavailable,
				))
			}
			lq := bookings.locationsrp.Tx(tx)
			for _, lid := range []uuid.UUID{
				req.PickupLocationID, req.ReturnLocationID,
			} {
				if _, err := lq.Get(ctx, lid); err != nil {
					return fmt.Errorf("getting location %v: %w", lid, err)
				}
			}
			q := bookings.bookingsrp.Tx(tx)
			if err := q.LockCar(ctx, req.CarID); err != nil {
				return fmt.Errorf("locking car %v: %w", req.CarID, err)
			}
			overlap, err := q.ExistsOverlap(
				ctx, req.CarID, req.StartDate, req.EndDate, nil,
			)
			if err != nil {
				return fmt.Errorf("checking overlaps: %w", err)
			}
			if overlap {
				return cerr.Conflict(model.ErrDatesOverlap)
			}
			cost := bookings.calc.Calculate(req, car.RateCard)
			now := bookings.now().UTC()
			b = model.NewBooking(caller.UserID, bookings.newNumber(now), req, cost)
			b.CreatedAt = now
			if err := q.Insert(ctx, b); err != nil {
				return fmt.Errorf("inserting booking: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "booking created",
		slog.String("number", b.Number),
		log.Stringer("car", b.CarID),
		slog.String("total", b.TotalAmount.StringFixed(2)),
	)
	bookings.notify(ctx, b.UserID, "Booking Created", fmt.Sprintf(
		"Your booking #%s has been created successfully", b.Number,
	))
	return b, nil
}

// Get returns the id booking if the caller owns it or is an admin.
func (bookings *UseCase) Get(
	ctx context.Context, caller model.Caller, id uuid.UUID,
) (b *model.Booking, err error) {
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		b, err = bookings.bookingsrp.Conn(c).Get(ctx, id)
		if err != nil {
			return err
		}
		return authz.RequireAccess(caller, b.UserID)
	})
	if err != nil {
		b = nil
	}
	return
}

// GetByNumber returns the booking with the given booking number if
// the caller owns it or is an admin.
func (bookings *UseCase) GetByNumber(
	ctx context.Context, caller model.Caller, number string,
) (b *model.Booking, err error) {
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		b, err = bookings.bookingsrp.Conn(c).GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		return authz.RequireAccess(caller, b.UserID)
	})
	if err != nil {
		b = nil
	}
	return
}

// Details returns the id booking together with its car, locations, and
// payment (if any). Associations are fetched one by one explicitly.
func (bookings *UseCase) Details(
	ctx context.Context, caller model.Caller, id uuid.UUID,
) (d *model.BookingDetails, err error) {
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		d, err = bookings.details(ctx, c, caller, id)
		return err
	})
	if err != nil {
		d = nil
	}
	return
}

func (bookings *UseCase) details(
	ctx context.Context, c repo.Conn, caller model.Caller, id uuid.UUID,
) (*model.BookingDetails, error) {
	b, err := bookings.bookingsrp.Conn(c).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = authz.RequireAccess(caller, b.UserID); err != nil {
		return nil, err
	}
	d := &model.BookingDetails{Booking: b}
	if d.Car, err = bookings.carsrp.Conn(c).Get(ctx, b.CarID); err != nil {
		return nil, fmt.Errorf("getting car: %w", err)
	}
	lq := bookings.locationsrp.Conn(c)
	if d.PickupLocation, err = lq.Get(ctx, b.PickupLocationID); err != nil {
		return nil, fmt.Errorf("getting pickup location: %w", err)
	}
	if d.ReturnLocation, err = lq.Get(ctx, b.ReturnLocationID); err != nil {
		return nil, fmt.Errorf("getting return location: %w", err)
	}
	d.Payment, err = bookings.paymentsrp.Conn(c).ForBooking(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("getting payment: %w", err)
	}
	return d, nil
}

// ListMine returns the caller bookings, newest first. An empty (and
// non-nil) slice is returned if the caller has no bookings.
func (bookings *UseCase) ListMine(
	ctx context.Context, caller model.Caller,
) (bs []model.Booking, err error) {
	if err = authz.RequireIdentified(caller); err != nil {
		return nil, err
	}
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		bs, err = bookings.bookingsrp.Conn(c).ListByUser(ctx, caller.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if bs == nil {
		bs = []model.Booking{}
	}
	return bs, nil
}

func (bookings *UseCase) notify(
	ctx context.Context, userID, title, message string,
) {
	err := bookings.notifier.Notify(
		ctx, userID, model.NotificationKindBooking, title, message,
	)
	if err != nil {
		log.Warn(ctx, "failed to notify user",
			slog.String("user", userID),
			slog.String("title", title),
			log.Err("err", err),
		)
	}
}
