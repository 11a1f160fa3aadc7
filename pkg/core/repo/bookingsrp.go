// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/model"
)

// BookingsConnQueryer lists the bookings operations which are useful
// without a transaction, i.e., the read-only queries.
type BookingsConnQueryer interface {
	BookingsQueryer
}

// BookingsTxQueryer lists the bookings operations which must run in
// a transaction, because they take locks which are held until the
// transaction ends, or because they modify bookings and must be
// committed atomically with other changes.
type BookingsTxQueryer interface {
	BookingsQueryer

	// LockCar takes an exclusive transaction-scoped lock on the carID
	// car bookings. Concurrent transactions which try to lock the same
	// car wait until this transaction commits or rolls back, so the
	// overlap check and the subsequent insertion are serialized per car.
	LockCar(ctx context.Context, carID uuid.UUID) error

	// GetForUpdate finds a booking and locks its row until the end of
	// the current transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Booking, error)

	// Insert stores b, including its CreatedAt field as stamped by the
	// caller, and fills its ID field.
	// A duplicate booking number is reported as a cerr.Conflict error.
	Insert(ctx context.Context, b *model.Booking) error

	// Update persists the mutable fields of b (status, notes, and the
	// cancellation, pickup, return, and driver assignment fields) and
	// its UpdatedAt field as stamped by the caller. Cost fields are
	// never updated.
	Update(ctx context.Context, b *model.Booking) error
}

// BookingsQueryer lists the read-only bookings queries. Soft deleted
// bookings are invisible to all of them. Missing bookings are reported
// as a cerr.NotFound wrapping model.ErrBookingNotFound.
type BookingsQueryer interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	GetByNumber(ctx context.Context, number string) (*model.Booking, error)

	// ExistsOverlap reports if a blocking booking of the carID car
	// shares at least one calendar day with the [start, end] range.
	// The excludeID booking (if not nil) is ignored.
	ExistsOverlap(
		ctx context.Context,
		carID uuid.UUID,
		start, end time.Time,
		excludeID *uuid.UUID,
	) (bool, error)

	// ListByUser returns bookings of the userID user, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
}

// Bookings is the booking store. See Cars for the Conn/Tx pattern.
type Bookings interface {
	Conn(Conn) BookingsConnQueryer
	Tx(Tx) BookingsTxQueryer
}
