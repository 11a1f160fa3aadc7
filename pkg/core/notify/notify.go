// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package notify exports the expected interfaces for the user facing
// notification sinks. Both sinks are best-effort: use cases call them
// after their transactions are committed, log the returned errors, and
// never propagate them to their callers.
//
// The Notifier is implemented by the notificationsuc use case which
// persists in-app notifications. Mailer implementations are kept in
// the pkg/adapter/mail sub-packages.
package notify

import (
	"context"

	"github.com/momeni/car-rental/pkg/core/model"
)

// Notifier delivers an in-app notification to a user.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, title, message string) error
}

// Mailer sends transactional emails.
type Mailer interface {
	// SendBookingConfirmation sends the booking confirmation email,
	// describing the paid booking in d, to the given email address.
	SendBookingConfirmation(
		ctx context.Context, email string, d *model.BookingDetails,
	) error
}

// NotifierFunc adapts an ordinary function to the Notifier interface.
type NotifierFunc func(ctx context.Context, userID, kind, title, message string) error

// Notify calls f(ctx, userID, kind, title, message).
func (f NotifierFunc) Notify(
	ctx context.Context, userID, kind, title, message string,
) error {
	return f(ctx, userID, kind, title, message)
}

// Discard is a Notifier which drops all notifications.
var Discard Notifier = NotifierFunc(
	func(context.Context, string, string, string, string) error {
		return nil
	},
)
