// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/authz"
)

// Approve confirms the id pending booking. Only admins may approve
// bookings and only pending bookings may be approved.
func (bookings *UseCase) Approve(
	ctx context.Context, caller model.Caller, id uuid.UUID,
) (*model.Booking, error) {
	if err := authz.RequireAdmin(caller); err != nil {
		return nil, err
	}
	b, err := bookings.transition(ctx, id, func(b *model.Booking) error {
		if b.Status != model.BookingStatusPending {
			return invalidTransition(b.Status, model.BookingStatusConfirmed)
		}
		b.SetStatus(model.BookingStatusConfirmed, bookings.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	bookings.notify(ctx, b.UserID, "Booking Approved", fmt.Sprintf(
		"Your booking #%s has been approved", b.Number,
	))
	return b, nil
}

// Reject rejects the id pending booking with the given reason which
// is mandatory. Only admins may reject bookings. A rejected booking
// releases its car dates.
func (bookings *UseCase) Reject(
	ctx context.Context, caller model.Caller, id uuid.UUID, reason string,
) (*model.Booking, error) {
	if err := authz.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, cerr.BadRequest(model.ErrReasonRequired)
	}
	b, err := bookings.transition(ctx, id, func(b *model.Booking) error {
		if b.Status != model.BookingStatusPending {
			return invalidTransition(b.Status, model.BookingStatusRejected)
		}
		b.SetStatus(model.BookingStatusRejected, bookings.now())
		b.CancellationReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	bookings.notify(ctx, b.UserID, "Booking Rejected", fmt.Sprintf(
		"Your booking #%s has been rejected. %s", b.Number, reason,
	))
	return b, nil
}

// Cancel cancels the id booking with an optional reason. The booking
// owner or an admin may cancel a booking, as long as it is pending or
// confirmed. A missing booking is reported before an unauthorized
// caller and that is reported before an invalid status.
func (bookings *UseCase) Cancel(
	ctx context.Context, caller model.Caller, id uuid.UUID, reason string,
) (*model.Booking, error) {
	if err := authz.RequireIdentified(caller); err != nil {
		return nil, err
	}
	b, err := bookings.transition(ctx, id, func(b *model.Booking) error {
		if err := authz.RequireAccess(caller, b.UserID); err != nil {
			return err
		}
		if !b.Status.Cancellable() {
			return invalidTransition(b.Status, model.BookingStatusCancelled)
		}
		b.SetStatus(model.BookingStatusCancelled, bookings.now())
		b.CancellationReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	bookings.notify(ctx, b.UserID, "Booking Cancelled", fmt.Sprintf(
		"Your booking #%s has been cancelled", b.Number,
	))
	return b, nil
}

// UpdateStatus is the administrative status override. It sets the id
// booking status to s (stamping the pickup, return, or cancellation
// times accordingly) from any status, including the terminal ones.
// Non-empty notes replace the booking notes. The state machine guards
// are only enforced by Approve, Reject, and Cancel.
func (bookings *UseCase) UpdateStatus(
	ctx context.Context,
	caller model.Caller,
	id uuid.UUID,
	s model.BookingStatus,
	notes string,
) (*model.Booking, error) {
	if err := authz.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	b, err := bookings.transition(ctx, id, func(b *model.Booking) error {
		b.SetStatus(s, bookings.now())
		if notes != "" {
			b.Notes = notes
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	bookings.notify(ctx, b.UserID, "Booking Updated", fmt.Sprintf(
		"Your booking #%s status is %s now", b.Number, b.Status,
	))
	return b, nil
}

// transition locks the id booking, lets the mutate function verify
// and change it, and persists the result in one transaction.
// Errors of the mutate function are returned as is.
func (bookings *UseCase) transition(
	ctx context.Context, id uuid.UUID, mutate func(b *model.Booking) error,
) (b *model.Booking, err error) {
	var from model.BookingStatus
	err = bookings.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := bookings.bookingsrp.Tx(tx)
			b, err = q.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			from = b.Status
			if err := mutate(b); err != nil {
				return err
			}
			return q.Update(ctx, b)
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "booking status changed",
		slog.String("number", b.Number),
		log.Stringer("from", from),
		log.Stringer("to", b.Status),
	)
	return b, nil
}

func invalidTransition(from, to model.BookingStatus) error {
	return cerr.InvalidState(fmt.Errorf(
		"%s -> %s: %w", from, to, model.ErrInvalidTransition,
	))
}
