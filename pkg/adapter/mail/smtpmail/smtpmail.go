// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package smtpmail implements the notify.Mailer interface by sending
// emails through an SMTP server with the STARTTLS extension.
package smtpmail

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/car-rental/pkg/adapter/mail"
	"github.com/momeni/car-rental/pkg/core/model"
	"gopkg.in/gomail.v2"
)

// Config contains the SMTP server address and credentials.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     mail.Sender
}

// Mailer sends emails with an SMTP server.
type Mailer struct {
	from   mail.Sender
	sender func(msgs ...*gomail.Message) error
}

// New creates an SMTP Mailer. A new connection is established for
// each sent email.
func New(c Config) (*Mailer, error) {
	if c.Host == "" {
		return nil, errors.New("smtp host is empty")
	}
	if c.Port <= 0 {
		return nil, fmt.Errorf("invalid smtp port: %d", c.Port)
	}
	if c.From.Email == "" {
		c.From = mail.DefaultSender
	}
	d := gomail.NewDialer(c.Host, c.Port, c.Username, c.Password)
	return &Mailer{from: c.From, sender: d.DialAndSend}, nil
}

// NewWithSender creates a Mailer which passes messages to s instead
// of dialing an SMTP server.
func NewWithSender(from mail.Sender, s gomail.Sender) *Mailer {
	return &Mailer{
		from: from,
		sender: func(msgs ...*gomail.Message) error {
			return gomail.Send(s, msgs...)
		},
	}
}

// SendBookingConfirmation renders and sends the confirmation email.
func (m *Mailer) SendBookingConfirmation(
	ctx context.Context, email string, d *model.BookingDetails,
) error {
	msg, err := mail.BookingConfirmation(email, d)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.from.Email, m.from.Name)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	if err = m.sender(gm); err != nil {
		return fmt.Errorf("sending email via gomail: %w", err)
	}
	return nil
}
