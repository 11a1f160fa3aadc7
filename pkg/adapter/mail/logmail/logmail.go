// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package logmail provides a notify.Mailer which renders the emails
// and logs them instead of sending them. It is the default mailer of
// development deployments.
package logmail

import (
	"context"
	"log/slog"

	"github.com/momeni/car-rental/pkg/adapter/mail"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
)

// Mailer logs emails.
type Mailer struct{}

// New creates a logging Mailer.
func New() *Mailer {
	return &Mailer{}
}

// SendBookingConfirmation renders the confirmation email and logs its
// recipient and subject.
func (m *Mailer) SendBookingConfirmation(
	ctx context.Context, email string, d *model.BookingDetails,
) error {
	msg, err := mail.BookingConfirmation(email, d)
	if err != nil {
		return err
	}
	log.Info(ctx, "email is not sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("size", len(msg.HTML)),
	)
	return nil
}
