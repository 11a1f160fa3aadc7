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

type PaymentsConnQueryer interface {
	PaymentsQueryer
}

type PaymentsTxQueryer interface {
	PaymentsQueryer

	// Insert stores p, including its CreatedAt field as stamped by the
	// caller, and fills its ID field.
	// There may be at most one payment per booking, so inserting
	// a second payment for a booking is reported as cerr.Conflict.
	Insert(ctx context.Context, p *model.Payment) error

	// Update persists all fields of p but its ID, BookingID, UserID,
	// and CreatedAt. The UpdatedAt field is stamped by the caller.
	Update(ctx context.Context, p *model.Payment) error
}

type PaymentsQueryer interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Payment, error)

	// ForBooking returns the payment of the bookingID booking with any
	// status, or nil if the booking has no payment yet.
	ForBooking(ctx context.Context, bookingID uuid.UUID) (*model.Payment, error)

	// FindCompletedForBooking returns the completed payment of the
	// bookingID booking, or nil if it has not been paid yet.
	FindCompletedForBooking(
		ctx context.Context, bookingID uuid.UUID,
	) (*model.Payment, error)

	// ListByUser returns payments of the userID user, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Payment, error)
}

type Payments interface {
	Conn(Conn) PaymentsConnQueryer
	Tx(Tx) PaymentsTxQueryer
}
