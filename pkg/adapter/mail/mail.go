// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package mail renders the transactional emails which are sent by the
// notify.Mailer implementations of its sub-packages. The smtpmail
// package sends them with an SMTP server, the sgmail package sends
// them through the SendGrid API, and the logmail package only logs
// them for development deployments.
package mail

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/momeni/car-rental/pkg/core/model"
)

// Sender identifies the From address of the sent emails.
type Sender struct {
	Name  string
	Email string
}

// DefaultSender is used when no sender is configured.
var DefaultSender = Sender{
	Name:  "CityCars Azerbaijan",
	Email: "noreply@citycars.az",
}

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

var confirmation = template.Must(template.New("confirmation").Parse(`<html>
<body>
  <h2>Booking Confirmation</h2>
  <p>Dear Customer,</p>
  <p>Your booking has been confirmed!</p>
  <h3>Booking Details:</h3>
  <ul>
    <li><strong>Booking Number:</strong> {{.Booking.Number}}</li>
    <li><strong>Car:</strong> {{.Car.Brand}} {{.Car.Model}}</li>
    <li><strong>Pickup Date:</strong> {{.Booking.StartDate.Format "02 Jan 2006"}}</li>
    <li><strong>Return Date:</strong> {{.Booking.EndDate.Format "02 Jan 2006"}}</li>
    <li><strong>Pickup Location:</strong> {{.PickupLocation.Name}}</li>
    <li><strong>Return Location:</strong> {{.ReturnLocation.Name}}</li>
    <li><strong>Total Amount:</strong> ${{.Booking.TotalAmount.StringFixed 2}}</li>
  </ul>
  <p>Please arrive 15 minutes before your pickup time.</p>
  <p>Don't forget to bring:</p>
  <ul>
    <li>Valid driver's license</li>
    <li>ID/Passport</li>
    <li>Credit card for deposit</li>
  </ul>
  <p>For any questions, please contact us at support@citycars.az</p>
  <p>Best regards,<br/>CityCars Azerbaijan Team</p>
</body>
</html>
`))

// BookingConfirmation renders the confirmation email of a paid booking.
// The d details must include the car and both locations.
func BookingConfirmation(to string, d *model.BookingDetails) (*Message, error) {
	if strings.TrimSpace(to) == "" {
		return nil, errors.New("recipient address is empty")
	}
	if d == nil || d.Booking == nil || d.Car == nil ||
		d.PickupLocation == nil || d.ReturnLocation == nil {
		return nil, errors.New("incomplete booking details")
	}
	var buf bytes.Buffer
	if err := confirmation.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("rendering confirmation: %w", err)
	}
	return &Message{
		To:      to,
		Subject: "Booking Confirmation - #" + d.Booking.Number,
		HTML:    buf.String(),
	}, nil
}
