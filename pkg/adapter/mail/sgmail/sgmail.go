// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sgmail implements the notify.Mailer interface using the
// SendGrid v3 mail send API.
package sgmail

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/momeni/car-rental/pkg/adapter/mail"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/sendgrid/sendgrid-go"
	sgm "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const endpoint = "/v3/mail/send"

// Mailer sends emails through SendGrid.
type Mailer struct {
	apiKey string
	host   string
	from   mail.Sender
}

// New creates a SendGrid Mailer. The host may be empty in order to
// use the default SendGrid API host.
func New(apiKey, host string, from mail.Sender) (*Mailer, error) {
	if apiKey == "" {
		return nil, errors.New("sendgrid api key is empty")
	}
	if from.Email == "" {
		from = mail.DefaultSender
	}
	return &Mailer{apiKey: apiKey, host: host, from: from}, nil
}

// SendBookingConfirmation renders and sends the confirmation email.
// Responses with a non-2xx status code are reported as errors.
func (m *Mailer) SendBookingConfirmation(
	ctx context.Context, email string, d *model.BookingDetails,
) error {
	msg, err := mail.BookingConfirmation(email, d)
	if err != nil {
		return err
	}
	sm := sgm.NewV3Mail()
	sm.SetFrom(sgm.NewEmail(m.from.Name, m.from.Email))
	sm.Subject = msg.Subject
	p := sgm.NewPersonalization()
	p.AddTos(sgm.NewEmail("", msg.To))
	sm.AddPersonalizations(p)
	sm.AddContent(sgm.NewContent("text/html", msg.HTML))

	// a client keeps its request body, so it is not shared
	req := sendgrid.GetRequest(m.apiKey, endpoint, m.host)
	req.Method = http.MethodPost
	client := &sendgrid.Client{Request: req}
	resp, err := client.SendWithContext(ctx, sm)
	if err != nil {
		return fmt.Errorf("sending email via sendgrid: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf(
			"sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body,
		)
	}
	return nil
}
