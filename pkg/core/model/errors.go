// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "errors"

// These errors describe business-level failures. They do not carry the
// identifiers of the involved entities because callers already know
// about them. Each caller should wrap the obtained error and add the
// missing context (e.g., the booking id) while the use cases layer
// wraps them in a cerr.Error, so adapters can choose a suitable status
// code without knowing the sentinel errors one by one.
var (
	ErrCarNotFound          = errors.New("car not found")
	ErrLocationNotFound     = errors.New("location not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrDatesOverlap indicates that the asked date range shares at
	// least one calendar day with a blocking booking of the same car.
	ErrDatesOverlap = errors.New("car is already booked for the selected dates")

	// ErrCarUnavailable indicates that the car is in maintenance or
	// out of service, so it may not be booked for any date range.
	ErrCarUnavailable = errors.New("car is not available for booking")

	// ErrAlreadyPaid indicates that a completed payment exists for a
	// booking, so it may not be paid again.
	ErrAlreadyPaid = errors.New("booking is already paid")

	// ErrPaymentNotCompleted indicates that an operation which needs
	// a completed payment (e.g., invoicing) is asked for a failed one.
	ErrPaymentNotCompleted = errors.New("payment is not completed")

	// ErrDuplicateBookingNumber is reported by the bookings repository
	// when the unique booking number constraint is violated.
	ErrDuplicateBookingNumber = errors.New("duplicate booking number")

	// ErrUnknownReference is reported by repositories when a foreign
	// key constraint is violated.
	ErrUnknownReference = errors.New("referenced entity does not exist")

	ErrNotOwner        = errors.New("caller does not own the resource")
	ErrAdminRequired   = errors.New("operation requires an admin role")
	ErrRoleNotAccepted = errors.New("caller role is not accepted")

	// ErrInvalidTransition indicates that a booking status change is
	// not permitted from its current status.
	ErrInvalidTransition = errors.New("status transition is not permitted")

	ErrReasonRequired = errors.New("a reason is required")
)
